package sessionprobe

// Package sessionprobe recovers the agent runtime's most recent session id
// by executing short-lived commands inside its container. The runtime's
// session store is private process state reached over a generic exec
// channel, so every strategy here is best effort: an absent session and a
// failed probe are the same result to callers.

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/devharbor/devharbor/domain/model"
	"github.com/devharbor/devharbor/internal/logging"
	"github.com/devharbor/devharbor/internal/streammux"
)

// Agent runtime storage layout inside the container.
const (
	stateDBPath  = "/home/agent/.agentd/state.db"
	storageRoot  = "/home/agent/.agentd"
	sessionQuery = "SELECT id FROM sessions ORDER BY created_at DESC LIMIT 1;"
)

var sessionIDPattern = regexp.MustCompile(`^ses_[A-Za-z0-9_]+$`)

// Prober discovers the active session inside an agent container.
type Prober struct {
	Engine  model.EnginePort
	Timeout time.Duration // per-exec bound; probes must never hang
}

// Probe returns the most recent session id known to the agent runtime in
// the given container, or ("", false) when none can be recovered. It never
// returns an error: transport failures are logged and swallowed because
// callers treat "no session yet" and "probe failed" identically.
func (p *Prober) Probe(ctx context.Context, containerRef string) (string, bool) {
	log := logging.FromContext(ctx).With("container", containerRef)

	// Primary: query the runtime's embedded session store.
	if raw, err := p.exec(ctx, containerRef, []string{"sqlite3", stateDBPath, sessionQuery}); err != nil {
		log.Debug(ctx, "session store query failed", "err", err.Error())
	} else if id, ok := validate(raw); ok {
		return id, true
	}

	// Fallback: scan for session directories under the storage root.
	raw, err := p.exec(ctx, containerRef, []string{"find", storageRoot, "-maxdepth", "2", "-type", "d", "-name", "ses_*"})
	if err != nil {
		log.Debug(ctx, "session directory scan failed", "err", err.Error())
		return "", false
	}
	return validate(raw)
}

func (p *Prober) exec(ctx context.Context, ref string, cmd []string) (string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stream, err := p.Engine.Exec(ctx, ref, cmd)
	if err != nil {
		return "", err
	}
	defer stream.Close()
	return streammux.Demux(stream, streammux.Stdout)
}

// validate extracts the first candidate line and checks it against the
// session-id pattern. Directory paths are reduced to their last element.
func validate(raw string) (string, bool) {
	line, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	line = strings.TrimSpace(line)
	if i := strings.LastIndexByte(line, '/'); i >= 0 {
		line = line[i+1:]
	}
	if !sessionIDPattern.MatchString(line) {
		return "", false
	}
	return line, true
}
