// Package uci drives an external engine process over the Universal Chess
// Interface protocol, implementing game.Player. A background goroutine
// pumps stdout lines onto a channel, and blocking calls wait on that
// channel with a regex match and a timeout.
package uci

import (
	"bufio"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ucigauntlet/arbiter/pkg/game"
)

// Config describes how to launch and configure one UCI engine.
type Config struct {
	Name    string            `yaml:"name"`
	Cmd     string            `yaml:"cmd"`
	Dir     string            `yaml:"dir"`
	Args    []string          `yaml:"args"`
	Options map[string]string `yaml:"options"`

	// SyncTimeout bounds isready/readyok and uciok round-trips.
	SyncTimeout time.Duration `yaml:"sync-timeout"`
}

// Engine is a game.Player backed by a live UCI engine subprocess.
type Engine struct {
	name string
	cmd  *exec.Cmd

	writer *bufio.Writer
	lines  chan string
	err    error

	chess960 bool
	syncWait time.Duration
}

// Start launches the engine process, performs the UCI handshake, applies
// cfg.Options, and records whether UCI_Chess960 was advertised (see
// SupportsChess960).
func Start(cfg Config) (*Engine, error) {
	proc := exec.Command(cfg.Cmd, cfg.Args...)
	proc.Dir = cfg.Dir

	stdin, err := proc.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", cfg.Name, err)
	}
	stdout, err := proc.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", cfg.Name, err)
	}

	e := &Engine{
		name:     cfg.Name,
		cmd:      proc,
		writer:   bufio.NewWriter(stdin),
		lines:    make(chan string),
		syncWait: cfg.SyncTimeout,
	}
	if e.syncWait == 0 {
		e.syncWait = 10 * time.Second
	}

	if err := proc.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", cfg.Name, err)
	}

	reader := bufio.NewReader(stdout)
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				e.err = err
				close(e.lines)
				return
			}
			line = strings.TrimRight(line, " \t\r\n")
			logrus.Debugf("uci: (%s)> %s", e.name, line)
			e.lines <- line
		}
	}()

	if err := e.write("uci"); err != nil {
		return nil, err
	}
	if _, err := e.await(`^uciok$`, e.syncWait); err != nil {
		return nil, fmt.Errorf("handshake with %s: %w", cfg.Name, err)
	}

	for name, value := range cfg.Options {
		if err := e.write("setoption name %s value %s", name, value); err != nil {
			return nil, err
		}
	}

	if err := e.Synchronize(); err != nil {
		return nil, fmt.Errorf("synchronizing %s: %w", cfg.Name, err)
	}

	return e, nil
}

// Name implements game.Player.
func (e *Engine) Name() string { return e.name }

// SupportsChess960 implements game.Player.
func (e *Engine) SupportsChess960() bool { return e.chess960 }

// NewGame implements game.Player: sends ucinewgame and synchronizes.
// UCI_Chess960 is set separately, through SetChess960.
func (e *Engine) NewGame() error {
	if err := e.write("ucinewgame"); err != nil {
		return err
	}
	return e.Synchronize()
}

// SetChess960 toggles UCI_Chess960 before the next NewGame/SetPosition.
func (e *Engine) SetChess960(on bool) error {
	return e.write("setoption name UCI_Chess960 value %t", on)
}

// Synchronize performs a blocking isready/readyok round-trip.
func (e *Engine) Synchronize() error {
	if err := e.write("isready"); err != nil {
		return err
	}
	_, err := e.await(`^readyok$`, e.syncWait)
	return err
}

// SetPosition implements game.Player by writing the already-built
// "position ..." command verbatim.
func (e *Engine) SetPosition(cmd string) error {
	return e.write(cmd)
}

var infoRe = regexp.MustCompile(`^info\b.*$`)
var bestmoveRe = regexp.MustCompile(`^bestmove\s+(\S+)`)

// Go implements game.Player: writes the already-built "go ..." command,
// then reads info/bestmove lines until bestmove, or until timeLeft plus a
// fixed 5s grace period has elapsed.
// It is the one call site where the driver's per-move clock budget is
// enforced against the wall clock.
func (e *Engine) Go(cmd string, timeLeft time.Duration) (game.BestMove, bool) {
	started := time.Now()

	if err := e.write(cmd); err != nil {
		return game.BestMove{}, false
	}

	budget := timeLeft + 5*time.Second // grace for engine overhead/IPC
	if budget <= 0 {
		budget = 5 * time.Second
	}
	deadline := time.After(budget)

	var info game.Info
	var pv string

	for {
		select {
		case <-deadline:
			return game.BestMove{}, false

		case line, open := <-e.lines:
			if !open {
				return game.BestMove{}, false
			}

			switch {
			case infoRe.MatchString(line):
				parseInfo(line, &info, &pv)

			case bestmoveRe.MatchString(line):
				m := bestmoveRe.FindStringSubmatch(line)
				return game.BestMove{
					LAN:   m[1],
					PV:    pv,
					Info:  info,
					Spent: time.Since(started),
				}, true
			}
		}
	}
}

// Kill terminates the engine process. It is the caller's responsibility
// to invoke this once per engine after the match is over; the driver
// itself never kills engines mid-game.
func (e *Engine) Kill() error {
	_ = e.write("quit")
	return e.cmd.Process.Kill()
}

func (e *Engine) write(format string, a ...any) error {
	logrus.Debugf("uci: (%s)< "+format, append([]any{e.name}, a...)...)
	if _, err := fmt.Fprintf(e.writer, format+"\n", a...); err != nil {
		return err
	}
	return e.writer.Flush()
}

func (e *Engine) await(pattern string, timeout time.Duration) (string, error) {
	re := regexp.MustCompile(pattern)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			if e.err != nil {
				return "", e.err
			}
			return "", fmt.Errorf("uci: %s: timed out waiting for %q", e.name, pattern)

		case line, open := <-e.lines:
			if !open {
				return "", e.err
			}
			if strings.HasPrefix(line, "option name UCI_Chess960") {
				e.chess960 = true
			}
			if re.MatchString(line) {
				return line, nil
			}
		}
	}
}

// parseInfo extracts depth, score (cp or mate, normalized to centipawns
// with mate scores folded into the ±32767 band), time, and the latest pv
// from one "info ..." line.
func parseInfo(line string, info *game.Info, pv *string) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if d, err := strconv.Atoi(fields[i+1]); err == nil {
					info.Depth = d
				}
			}
		case "time":
			if i+1 < len(fields) {
				if ms, err := strconv.Atoi(fields[i+1]); err == nil {
					info.Time = time.Duration(ms) * time.Millisecond
				}
			}
		case "score":
			if i+2 < len(fields) {
				kind, val := fields[i+1], fields[i+2]
				n, err := strconv.Atoi(val)
				if err != nil {
					continue
				}
				switch kind {
				case "cp":
					info.Score = n
				case "mate":
					if n >= 0 {
						info.Score = 1<<15 - 1 - (n * 2)
					} else {
						info.Score = -(1 << 15) - (n * 2)
					}
				}
			}
		case "pv":
			*pv = strings.Join(fields[i+1:], " ")
			i = len(fields)
		}
	}
}
