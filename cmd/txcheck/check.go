package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MarkLTZ/bitcoin/domain/consensus/model"
	"github.com/MarkLTZ/bitcoin/domain/consensus/ruleerrors"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/consensushashing"
	"github.com/MarkLTZ/bitcoin/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// maxLineLength fits the hex encoding of the largest transaction a block can hold.
const maxLineLength = 2 * 4_000_000

type checkResult struct {
	lineNumber int
	txID       string
	reason     string
	decodeErr  error
}

func (result *checkResult) valid() bool {
	return result.decodeErr == nil && result.reason == ""
}

func (result *checkResult) String() string {
	switch {
	case result.decodeErr != nil:
		return fmt.Sprintf("line %d undecodable %s", result.lineNumber, result.decodeErr)
	case result.reason != "":
		return fmt.Sprintf("%s invalid %s", result.txID, result.reason)
	default:
		return fmt.Sprintf("%s valid", result.txID)
	}
}

type checkJob struct {
	lineNumber int
	line       string
}

// checkTransactions validates every hex-encoded transaction read from r, one
// per line, and writes a verdict per transaction to w in input order. Blank
// lines and lines starting with '#' are skipped. It returns the number of
// transactions that were either undecodable or invalid.
func checkTransactions(r io.Reader, w io.Writer, validator model.TransactionValidator, workers int) (int, error) {
	jobs, err := readJobs(r)
	if err != nil {
		return 0, err
	}

	results := make([]*checkResult, len(jobs))
	jobIndexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		spawn(func() {
			defer wg.Done()
			for index := range jobIndexes {
				results[index] = checkTransaction(jobs[index], validator)
			}
		})
	}
	for index := range jobs {
		jobIndexes <- index
	}
	close(jobIndexes)
	wg.Wait()

	failures := 0
	for _, result := range results {
		if !result.valid() {
			failures++
		}
		_, err := fmt.Fprintln(w, result)
		if err != nil {
			return failures, errors.Wrap(err, "error writing verdict")
		}
	}
	return failures, nil
}

func readJobs(r io.Reader) ([]checkJob, error) {
	var jobs []checkJob
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength+2)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		jobs = append(jobs, checkJob{lineNumber: lineNumber, line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading transactions after line %d", lineNumber)
	}
	return jobs, nil
}

func checkTransaction(job checkJob, validator model.TransactionValidator) *checkResult {
	result := &checkResult{lineNumber: job.lineNumber}

	serialized, err := hex.DecodeString(job.line)
	if err != nil {
		result.decodeErr = errors.Wrap(err, "bad hex")
		return result
	}
	tx, err := serialization.DeserializeTransactionFromBytes(serialized)
	if err != nil {
		result.decodeErr = err
		return result
	}
	result.txID = consensushashing.TransactionID(tx).String()

	err = validator.ValidateTransactionInIsolation(tx)
	if err == nil {
		log.Debugf("Transaction %s on line %d is valid", result.txID, job.lineNumber)
		return result
	}
	reason, ok := ruleerrors.RejectReason(err)
	if !ok {
		reason = err.Error()
	}
	result.reason = reason
	log.Debugf("Transaction %s on line %d is invalid: %s", result.txID, job.lineNumber, err)
	return result
}
