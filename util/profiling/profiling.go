package profiling

import (
	"net"
	"net/http"

	// Required for profiling
	_ "net/http/pprof"

	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/MarkLTZ/bitcoin/util/panics"
	"github.com/pkg/errors"
)

// Start starts the profiling server
func Start(port string, log *logger.Logger) {
	spawn := panics.GoroutineWrapperFunc(log)
	spawn(func() {
		listenAddr := net.JoinHostPort("", port)
		log.Infof("Profile server listening on %s", listenAddr)
		profileRedirect := http.RedirectHandler("/debug/pprof", http.StatusSeeOther)
		http.Handle("/", profileRedirect)
		err := http.ListenAndServe(listenAddr, nil)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err)
		}
	})
}

// ValidatePort returns an error if port is not a valid non-privileged port.
func ValidatePort(port string) error {
	portNumber, err := net.LookupPort("tcp", port)
	if err != nil || portNumber < 1024 || portNumber > 65535 {
		return errors.Errorf("the profile port must be between 1024 and 65535, got %q", port)
	}
	return nil
}
