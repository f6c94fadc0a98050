//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

// binPath is set by TestMain
var binPath = "selekt_e2e"

const (
	KeyCtrlC   = "\x03"
	KeyEsc     = "\x1b"
	KeyQuit    = "q"
	KeyToggle  = "t"
	KeyDisable = "d"
	KeyClear   = "c"
	KeyHistory = "l"
	KeyHelp    = "?"
)

const (
	termRows = 40
	termCols = 120

	// SGR mouse button bits
	mouseLeftBtn = 0
	mouseShift   = 4
	mouseAlt     = 8
	mouseCtrl    = 16

	maxTranscript = 4 << 20
	pollInterval  = 25 * time.Millisecond
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?<]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUITestFramework runs selekt in a pseudo terminal and records everything
// it writes. Offsets returned by Mark stay valid for the life of the process.
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu         sync.Mutex
	transcript []byte
	dropped    int // bytes discarded from the front once maxTranscript is hit
}

// NewTUITest creates a framework bound to t
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t}
}

// CreateTestWorkspace creates an isolated home directory for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	return tf.workspace, nil
}

// WriteConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(body string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, "selekt.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// StartApp launches selekt with args inside a PTY of termCols x termRows
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Dir = tf.workspace // selekt.log lands in the workspace
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"SELEKT_E2E_TEST=1",
	)

	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	tf.pty = ptmx
	tf.tty = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stderr = tty

	if err := setWinsize(ptmx, termRows, termCols); err != nil {
		tf.t.Logf("set window size: %v", err)
	}

	if err := tf.cmd.Start(); err != nil {
		ptmx.Close()
		tty.Close()
		return fmt.Errorf("failed to start selekt: %w", err)
	}

	go tf.record()
	return nil
}

func setWinsize(f *os.File, rows, cols uint16) error {
	ws := struct{ Row, Col, X, Y uint16 }{rows, cols, 0, 0}
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&ws)))
	if errno != 0 {
		return errno
	}
	return nil
}

// record copies PTY output into the transcript until the PTY closes.
func (tf *TUITestFramework) record() {
	buf := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			tf.transcript = append(tf.transcript, buf[:n]...)
			if over := len(tf.transcript) - maxTranscript; over > 0 {
				tf.transcript = tf.transcript[over:]
				tf.dropped += over
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw input to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// SendCtrlC sends an interrupt keystroke
func (tf *TUITestFramework) SendCtrlC() error {
	return tf.SendKeys(KeyCtrlC)
}

// Quit presses the quit key
func (tf *TUITestFramework) Quit() error {
	return tf.SendKeys(KeyQuit)
}

// sgrMouse encodes an SGR (1006) mouse report. x and y are zero based cells.
func sgrMouse(button, x, y int, press bool) string {
	final := "m"
	if press {
		final = "M"
	}
	return fmt.Sprintf("\x1b[<%d;%d;%d%s", button, x+1, y+1, final)
}

// Press sends a left button press at cell (x, y) with modifier bits
func (tf *TUITestFramework) Press(x, y, mods int) error {
	return tf.SendKeys(sgrMouse(mouseLeftBtn|mods, x, y, true))
}

// Release sends a left button release at cell (x, y) with modifier bits
func (tf *TUITestFramework) Release(x, y, mods int) error {
	return tf.SendKeys(sgrMouse(mouseLeftBtn|mods, x, y, false))
}

// Click sends a press and a release on the same cell
func (tf *TUITestFramework) Click(x, y, mods int) error {
	if err := tf.Press(x, y, mods); err != nil {
		return err
	}
	return tf.Release(x, y, mods)
}

// Mark returns the current transcript offset, for use with SeeAfter
func (tf *TUITestFramework) Mark() int {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.dropped + len(tf.transcript)
}

// since returns the plain text written after mark
func (tf *TUITestFramework) since(mark int) string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	off := mark - tf.dropped
	if off < 0 {
		off = 0
	}
	if off > len(tf.transcript) {
		off = len(tf.transcript)
	}
	return ansiRe.ReplaceAllString(string(tf.transcript[off:]), "")
}

// SnapshotPlain returns the retained output with escape sequences removed
func (tf *TUITestFramework) SnapshotPlain() string {
	return tf.since(0)
}

// waitSince polls until pred holds for the plain output after mark.
func (tf *TUITestFramework) waitSince(mark int, timeout time.Duration, pred func(string) bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.since(mark)) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// Ready waits for the readiness marker printed in e2e mode
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.waitSince(0, 5*time.Second, func(s string) bool {
		return strings.Contains(s, "__READY__")
	})
}

// SeePlain waits up to three seconds for text anywhere in the output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.waitSince(0, 3*time.Second, func(s string) bool {
		return strings.Contains(s, text)
	})
}

// SeeAfter waits for text to appear in output written after mark. The error
// carries the tail of the output.
func (tf *TUITestFramework) SeeAfter(mark int, text string) error {
	tf.t.Helper()
	if tf.waitSince(mark, 3*time.Second, func(s string) bool { return strings.Contains(s, text) }) {
		return nil
	}
	return fmt.Errorf("expected %q\n--- tail ---\n%s", text, tail(tf.since(mark), 4096))
}

func tail(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// DumpTailOnFail saves the last n bytes of plain output to a file for debugging
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	t.Helper()
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(tail(tf.SnapshotPlain(), n)), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY and kills the application if it is still running
func (tf *TUITestFramework) Cleanup() {
	// closing the PTY delivers SIGHUP to the child
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
