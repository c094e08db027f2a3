package engo

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-skirmish/pkg/logging"
)

// TestMain gives engo a mailbox so render components can be mutated
// without a window
func TestMain(m *testing.M) {
	if engo.Mailbox == nil {
		engo.Mailbox = &engo.MessageManager{}
	}
	os.Exit(m.Run())
}

// fakeSprites records what would have been handed to common.RenderSystem
type fakeSprites struct {
	renders map[uint64]*common.RenderComponent
	spaces  map[uint64]*common.SpaceComponent
	removed int
}

func newFakeSprites() *fakeSprites {
	return &fakeSprites{
		renders: make(map[uint64]*common.RenderComponent),
		spaces:  make(map[uint64]*common.SpaceComponent),
	}
}

func (f *fakeSprites) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.renders[basic.ID()] = render
	f.spaces[basic.ID()] = space
}

func (f *fakeSprites) Remove(basic ecs.BasicEntity) {
	if _, ok := f.renders[basic.ID()]; ok {
		f.removed++
	}
	delete(f.renders, basic.ID())
	delete(f.spaces, basic.ID())
}

// fakeButtons is a scripted button state
type fakeButtons struct {
	down map[string]bool
	just map[string]bool
}

func newFakeButtons() *fakeButtons {
	return &fakeButtons{down: make(map[string]bool), just: make(map[string]bool)}
}

func (f *fakeButtons) Down(name string) bool        { return f.down[name] }
func (f *fakeButtons) JustPressed(name string) bool { return f.just[name] }

func discardLogger() *logging.Logger {
	return logging.NewLoggerWithWriter(io.Discard, slog.LevelError, logging.FormatJSON)
}
