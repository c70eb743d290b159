package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/PieterJanSterk/second-movement/internal/gamedata"
	"github.com/PieterJanSterk/second-movement/internal/random"
	"github.com/PieterJanSterk/second-movement/internal/ui"
)

// Game owns the terminal, the active session, and the settings that carry
// from one session to the next.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	melodies *gamedata.MelodyRegistry
	src      random.Source
	logger   *zap.Logger
	settings Settings
	session  *Session
	running  bool
}

// New creates a game instance drawing randomness from src. The terminal is
// taken over last, so a data loading failure leaves it untouched.
func New(src random.Source, settings Settings, logger *zap.Logger) (*Game, error) {
	melodies, err := gamedata.LoadMelodyRegistry()
	if err != nil {
		return nil, fmt.Errorf("load melodies: %w", err)
	}
	theme, err := gamedata.LoadTheme()
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, theme),
		melodies: melodies,
		src:      src,
		logger:   logger,
		settings: settings,
		running:  true,
	}, nil
}

// Run executes the main loop until the player quits or ctx is canceled.
// Two goroutines feed it, the tcell event pump and the tick timer, but all
// session access happens in this loop, keeping the core single-owner.
func (g *Game) Run(ctx context.Context) error {
	g.session = NewSession(ctx, &g.settings, g.src, g.melodies, g.logger)

	events := make(chan tcell.Event)
	go g.pumpEvents(events)

	hz := g.session.TickHz()
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for g.running {
		g.renderer.Render(BuildFrame(g.session))

		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-ticker.C:
			g.handleTick()
		}

		// melodies run at double speed; follow the session's lead
		if want := g.session.TickHz(); want != hz {
			hz = want
			ticker.Reset(time.Second / time.Duration(hz))
		}

		if g.session.ShouldRestart() {
			g.session = NewSession(ctx, &g.settings, g.src, g.melodies, g.logger)
		}
	}

	g.screen.Close()
	return nil
}

// pumpEvents forwards terminal events to the main loop. PollEvent returns
// nil once the screen is finalized, which ends the pump.
func (g *Game) pumpEvents(events chan<- tcell.Event) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		events <- ev
	}
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input. The two watch buttons map to
// l (light, cycle) and a (alarm, confirm) with space and enter as aliases;
// the long presses become the m and s keys.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyEnter:
		g.session.Confirm(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'l', 'L', ' ':
			g.session.Cycle()
		case 'a', 'A':
			g.session.Confirm(ctx)
		case 'm', 'M':
			if g.session.ToggleWumpusMode() {
				g.chirp("chirp_mode")
			}
		case 's', 'S':
			if g.session.ToggleSound() {
				g.chirp("chirp_sound")
			}
		}
	}
}

// handleTick advances the session clock and sounds the bell once per
// melody note.
func (g *Game) handleTick() {
	g.session.Tick()
	if g.session.MelodyCue() != CueNone && g.session.MelodyStep() > 0 {
		g.screen.Beep()
	}
}

// chirp sounds a one-note confirmation if sound is on and the chirp is
// defined in the melody data.
func (g *Game) chirp(id string) {
	if !g.settings.Sound || g.melodies.GetByID(id) == nil {
		return
	}
	g.screen.Beep()
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
