package nvim

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/dpane/internal/config"
	"github.com/sokinpui/dpane/internal/session"
	"github.com/sokinpui/dpane/model"
)

const (
	mergeEvent = "dpane_merge"
	syncEvent  = "dpane_sync"
	quitEvent  = "dpane_quit"
)

// signGroups maps a marker kind to its sign group and sign name. One group
// per category per buffer; a resync unplaces the whole group before placing
// the new markers, so stale signs can never accumulate.
var signGroups = map[model.MarkerKind][2]string{
	model.CopyFromOriginal: {"DpaneRight", "DpaneMarkRight"},
	model.CopyFromModified: {"DpaneLeft", "DpaneMarkLeft"},
}

// Manager handles the connection and interaction with a Neovim instance.
type Manager struct {
	nvim          *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string

	theme config.Theme
	sess  *session.Session
	bufs  map[model.Side]nvim.Buffer
	done  chan struct{}
}

// New creates a new Neovim manager, connecting to an existing instance or
// starting a new headless one. address overrides $NVIM_LISTEN_ADDRESS.
func New(address string, theme config.Theme) (*Manager, error) {
	if address == "" {
		address = os.Getenv("NVIM_LISTEN_ADDRESS")
	}
	if address != "" {
		v, err := nvim.Dial(address)
		if err == nil {
			return newManager(v, theme), nil
		}
	}

	// If that fails, start a temporary instance.
	tmpDir, err := os.MkdirTemp("", "dpane-nvim-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir for nvim: %w", err)
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--listen", socketPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start nvim: %w. Is 'nvim' in your PATH?", err)
	}

	// Wait for the socket file to appear.
	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		return nil, fmt.Errorf("failed to connect to nvim: %w", err)
	}

	m := newManager(v, theme)
	m.isSelfStarted = true
	m.cmd = cmd
	m.socketPath = socketPath
	return m, nil
}

func newManager(v *nvim.Nvim, theme config.Theme) *Manager {
	return &Manager{
		nvim:  v,
		theme: theme,
		bufs:  make(map[model.Side]nvim.Buffer),
		done:  make(chan struct{}),
	}
}

// Close disconnects from Neovim and cleans up if it was self-started.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
	if m.isSelfStarted && m.cmd != nil && m.cmd.Process != nil {
		m.cmd.Wait()
		os.RemoveAll(filepath.Dir(m.socketPath))
	}
}

// Replace implements decor.Sink with sign groups: unplace the category's
// whole group, then place the fresh markers. Inert until the panes exist.
func (m *Manager) Replace(side model.Side, kind model.MarkerKind, markers []model.Marker) {
	buf, ok := m.bufs[side]
	if !ok {
		return
	}
	group, name := signGroups[kind][0], signGroups[kind][1]

	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("sign unplace * group=%s buffer=%d", group, int(buf)))
	for i, marker := range markers {
		b.Command(fmt.Sprintf("sign place %d line=%d name=%s group=%s buffer=%d",
			i+1, marker.Line, name, group, int(buf)))
	}
	// Marker placement is best-effort; a failed batch leaves the gutter
	// stale until the next resync.
	_ = b.Execute()
}

// OpenPanes lays the session out as two vsplit scratch buffers, wires the
// gutter signs and the RPC round trip, and renders the first marker set.
func (m *Manager) OpenPanes(sess *session.Session, origLang, modLang string) error {
	m.sess = sess

	if err := m.registerHandlers(); err != nil {
		return err
	}

	if err := m.defineSigns(); err != nil {
		return fmt.Errorf("failed to define signs: %w", err)
	}

	if err := m.createPane(model.Original, origLang, true); err != nil {
		return err
	}
	if err := m.createPane(model.Modified, modLang, false); err != nil {
		return err
	}

	for _, side := range []model.Side{model.Original, model.Modified} {
		if err := m.writeBuffer(side); err != nil {
			return err
		}
	}

	// Now that both panes exist the sink is live; re-run the cycle so the
	// initial markers land.
	sess.Refresh()

	// Writing a large pair can leave the windows scrolled mid-file. Reset
	// the view once the buffers settle; skipped if the session is already
	// gone by then.
	sess.ScheduleScrollFix(100*time.Millisecond, func() {
		m.nvim.Command("silent! windo normal! gg")
	})
	return nil
}

// Run blocks until the user quits the compare tab or the connection drops.
func (m *Manager) Run() error {
	<-m.done
	return nil
}

func (m *Manager) defineSigns() error {
	b := m.nvim.NewBatch()
	b.Command(fmt.Sprintf("sign define DpaneMarkRight text=%s texthl=DiffChange", m.theme.MarkerRight))
	b.Command(fmt.Sprintf("sign define DpaneMarkLeft text=%s texthl=DiffChange", m.theme.MarkerLeft))
	return b.Execute()
}

func (m *Manager) createPane(side model.Side, lang string, first bool) error {
	b := m.nvim.NewBatch()
	if first {
		b.Command("tabnew")
	} else {
		b.Command("rightbelow vsplit")
	}
	b.Command("enew")
	if err := b.Execute(); err != nil {
		return fmt.Errorf("failed to open %s pane: %w", side, err)
	}

	buf, err := m.nvim.CurrentBuffer()
	if err != nil {
		return fmt.Errorf("failed to resolve %s buffer: %w", side, err)
	}
	m.bufs[side] = buf

	b = m.nvim.NewBatch()
	b.Command("setlocal buftype=nofile bufhidden=wipe noswapfile")
	b.Command("setlocal signcolumn=yes")
	if lang != "" && lang != "plaintext" {
		b.Command(fmt.Sprintf("setlocal filetype=%s", lang))
	}
	b.Command(fmt.Sprintf("file dpane://%s", side))

	// Gutter interaction: gm merges the hunk under the cursor, pulling
	// content from the opposite pane into this one.
	b.Command(fmt.Sprintf(
		"nnoremap <buffer> <silent> gm :call rpcnotify(0, '%s', line('.'), '%s')<CR>",
		mergeEvent, side))
	// Manual edits in either pane re-enter the diff cycle.
	b.Command(fmt.Sprintf(
		"autocmd TextChanged,InsertLeave <buffer> call rpcnotify(0, '%s', '%s')",
		syncEvent, side))
	b.Command(fmt.Sprintf(
		"autocmd BufWipeout <buffer> call rpcnotify(0, '%s')", quitEvent))
	return b.Execute()
}

func (m *Manager) registerHandlers() error {
	if err := m.nvim.RegisterHandler(mergeEvent, m.onMerge); err != nil {
		return err
	}
	if err := m.nvim.RegisterHandler(syncEvent, m.onSync); err != nil {
		return err
	}
	if err := m.nvim.RegisterHandler(quitEvent, m.onQuit); err != nil {
		return err
	}
	for _, event := range []string{mergeEvent, syncEvent, quitEvent} {
		if err := m.nvim.Subscribe(event); err != nil {
			return err
		}
	}
	return nil
}

// onMerge handles a gutter activation: the clicked side is the merge
// target, so the hunk is copied from the opposite pane into it.
func (m *Manager) onMerge(args ...interface{}) {
	if m.sess == nil || len(args) < 2 {
		return
	}
	line := toInt(args[0])
	side, ok := toSide(args[1])
	if !ok {
		return
	}

	dir := model.ToOriginal
	if side == model.Modified {
		dir = model.ToModified
	}

	if !m.sess.MergeAt(line, side, dir) {
		return
	}
	if err := m.writeBuffer(targetOf(dir)); err != nil {
		return
	}
	// The merged buffer's line count changed; re-place both sign groups
	// against the new content.
	m.sess.Refresh()
}

// onSync pulls a manually edited buffer back into the session.
func (m *Manager) onSync(args ...interface{}) {
	if m.sess == nil || len(args) < 1 {
		return
	}
	side, ok := toSide(args[0])
	if !ok {
		return
	}
	buf, exists := m.bufs[side]
	if !exists {
		return
	}

	byteLines, err := m.nvim.BufferLines(buf, 0, -1, true)
	if err != nil {
		return
	}
	lines := make([]string, len(byteLines))
	for i, b := range byteLines {
		lines[i] = string(b)
	}
	m.sess.ReplaceAll(side, strings.Join(lines, "\n"))
}

func (m *Manager) onQuit(args ...interface{}) {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// writeBuffer mirrors the session document of the given side into its
// Neovim buffer.
func (m *Manager) writeBuffer(side model.Side) error {
	buf, ok := m.bufs[side]
	if !ok {
		return nil
	}
	doc := m.sess.Document(side)
	if doc == nil || doc.Closed() {
		return nil
	}

	lines := doc.LineRange(1, doc.LineCount())
	byteLines := make([][]byte, len(lines))
	for i, line := range lines {
		byteLines[i] = []byte(line)
	}
	return m.nvim.SetBufferLines(buf, 0, -1, true, byteLines)
}

func targetOf(dir model.Direction) model.Side {
	if dir == model.ToModified {
		return model.Modified
	}
	return model.Original
}

func toSide(arg interface{}) (model.Side, bool) {
	name, ok := arg.(string)
	if !ok {
		return 0, false
	}
	switch name {
	case "original":
		return model.Original, true
	case "modified":
		return model.Modified, true
	default:
		return 0, false
	}
}

func toInt(arg interface{}) int {
	switch v := arg.(type) {
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
