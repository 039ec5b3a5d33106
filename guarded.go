package fat16

import "sync"

// GuardedEngine wraps an Engine with a single coarse mutex, for callers that
// want to serialize concurrent access rather than enforce single-caller
// discipline themselves. The core Engine type assumes one caller at a time
// and does not pay for locking on every operation; this wrapper is opt-in.
type GuardedEngine struct {
	mu     sync.Mutex
	engine *Engine
}

// NewGuardedEngine wraps an already-mounted Engine.
func NewGuardedEngine(engine *Engine) *GuardedEngine {
	return &GuardedEngine{engine: engine}
}

func (g *GuardedEngine) CreateFile(name, ext string, size uint32) (uint8, StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.CreateFile(name, ext, size)
}

func (g *GuardedEngine) DeleteFile(slot uint8) (StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.DeleteFile(slot)
}

func (g *GuardedEngine) RenameFile(slot uint8, name, ext string) (StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.RenameFile(slot, name, ext)
}

func (g *GuardedEngine) ReadFromFile(slot uint8, start uint32, dst []byte) (StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.ReadFromFile(slot, start, dst)
}

func (g *GuardedEngine) AppendToFile(slot uint8, data []byte) (StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.AppendToFile(slot, data)
}

func (g *GuardedEngine) ModifyFile(slot uint8, start uint32, data []byte) (StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.ModifyFile(slot, start, data)
}

func (g *GuardedEngine) ResizeFile(slot uint8, newSize uint32) (StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.ResizeFile(slot, newSize)
}

func (g *GuardedEngine) GetFileInformation(slot uint8) (Entry, StatusCode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.GetFileInformation(slot)
}

func (g *GuardedEngine) FindFile(name, ext string) (uint8, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.FindFile(name, ext)
}

func (g *GuardedEngine) GetEmptyClusters(max uint16) uint16 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.GetEmptyClusters(max)
}
