package fetchparams

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/MarkLTZ/bitcoin/domain/dagconfig"
	"github.com/MarkLTZ/bitcoin/infrastructure/metrics"
	"github.com/pkg/errors"
)

var (
	// ErrChecksumMismatch indicates a parameters file does not have the
	// expected SHA-256 digest.
	ErrChecksumMismatch = errors.New("sha256 checksum mismatch")

	// ErrUnexpectedStatus indicates the parameters server answered with a
	// non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// partialSuffix is appended to the path of a file while it's downloaded.
const partialSuffix = ".part"

// Fetcher downloads the zk-SNARK parameter files and verifies their
// checksums before they are trusted.
type Fetcher struct {
	client  *http.Client
	metrics *metrics.Metrics
}

// New returns a Fetcher that downloads with client. Redirects are followed
// according to the client's policy.
func New(client *http.Client, metrics *metrics.Metrics) *Fetcher {
	return &Fetcher{client: client, metrics: metrics}
}

// VerifyParams checks that the SHA-256 digest of the file at path is the
// hex-encoded expectedSHA256. A file that doesn't match is removed and the
// returned error wraps ErrChecksumMismatch.
func (f *Fetcher) VerifyParams(path string, expectedSHA256 string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return errors.Wrapf(err, "could not stat %s", path)
	}

	name := filepath.Base(path)
	hasher := sha256.New()
	progress := newProgressReporter(log, "Verifying", name, info.Size())
	_, err = io.Copy(io.MultiWriter(hasher, progress), file)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", path)
	}
	progress.done()

	digest := hex.EncodeToString(hasher.Sum(nil))
	ok := digest == expectedSHA256
	if f.metrics != nil {
		f.metrics.RecordParamsVerified(name, ok)
	}
	if !ok {
		// Closed before the removal for platforms that can't remove open files.
		file.Close()
		removeErr := os.Remove(path)
		if removeErr != nil {
			log.Warnf("Could not remove %s after a checksum mismatch: %s", path, removeErr)
		}
		return errors.Wrapf(ErrChecksumMismatch, "%s has digest %s, expected %s", path, digest, expectedSHA256)
	}
	return nil
}

// FetchParams downloads url into path. The file is written next to path
// first and moved into place only once the download completed.
func (f *Fetcher) FetchParams(ctx context.Context, url string, path string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "could not create request for %s", url)
	}
	response, err := f.client.Do(request)
	if err != nil {
		return errors.Wrapf(err, "could not download %s", url)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return errors.Wrapf(ErrUnexpectedStatus, "downloading %s returned %s", url, response.Status)
	}

	partialPath := path + partialSuffix
	file, err := os.OpenFile(partialPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrapf(err, "could not write to file %s", partialPath)
	}

	name := filepath.Base(path)
	progress := newProgressReporter(log, "Downloading", name, response.ContentLength)
	written, err := io.Copy(io.MultiWriter(file, progress), response.Body)
	if f.metrics != nil {
		f.metrics.AddParamsBytesFetched(name, int(written))
	}
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(partialPath)
		return errors.Wrapf(err, "could not download %s", url)
	}
	progress.done()

	return errors.Wrapf(os.Rename(partialPath, path), "could not move %s into place", partialPath)
}

// EnsureParams makes sure every parameters file of the network is present in
// dir with the expected checksum. Files that are missing or that fail
// verification are downloaded and verified again.
func (f *Fetcher) EnsureParams(ctx context.Context, params *dagconfig.Params, dir string) error {
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return errors.Wrapf(err, "could not create parameters directory %s", dir)
	}

	for _, paramsFile := range params.ZKParams {
		path := filepath.Join(dir, paramsFile.Name)

		_, err := os.Stat(path)
		switch {
		case err == nil:
			err = f.VerifyParams(path, paramsFile.SHA256)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrChecksumMismatch) {
				return err
			}
			log.Warnf("%s is corrupted, downloading it again", path)
		case os.IsNotExist(err):
		default:
			return errors.Wrapf(err, "could not stat %s", path)
		}

		err = f.FetchParams(ctx, params.ZKParamsURL+paramsFile.Name, path)
		if err != nil {
			return err
		}
		err = f.VerifyParams(path, paramsFile.SHA256)
		if err != nil {
			return err
		}
	}
	return nil
}
