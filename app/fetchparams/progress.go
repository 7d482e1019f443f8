package fetchparams

import "github.com/MarkLTZ/bitcoin/infrastructure/logger"

// progressReporter is an io.Writer that counts the bytes written through it
// and logs every 10% step of the expected total. A total that is not
// positive means the size is unknown and nothing is reported.
type progressReporter struct {
	log    *logger.Logger
	action string
	name   string
	total  int64

	soFar      int64
	reportDone int64
}

func newProgressReporter(log *logger.Logger, action, name string, total int64) *progressReporter {
	log.Infof("%s %s...", action, name)
	return &progressReporter{log: log, action: action, name: name, total: total}
}

func (p *progressReporter) Write(b []byte) (int, error) {
	p.soFar += int64(len(b))
	if p.total <= 0 {
		return len(b), nil
	}

	percentageDone := p.soFar * 100 / p.total
	if percentageDone < 1 {
		percentageDone = 1
	}
	if percentageDone > 99 {
		percentageDone = 99
	}
	if p.reportDone < percentageDone/10 {
		p.reportDone = percentageDone / 10
		p.log.Infof("%s %s: [%d%%]...", p.action, p.name, percentageDone)
	}
	return len(b), nil
}

func (p *progressReporter) done() {
	p.log.Infof("%s %s: [DONE] (%d bytes)", p.action, p.name, p.soFar)
}
