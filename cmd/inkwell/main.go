// Package main is the entry point for the Inkwell writing editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/editor"
	"github.com/dshills/inkwell/internal/render/frame"
	"github.com/dshills/inkwell/internal/render/style"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to appearance config")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s (%s)\n", version, commit)
		return 0
	}

	app := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		app = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	session := editor.NewSession(app, nil, logger)

	path := flag.Arg(0)
	if path != "" {
		if err := session.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("starting from an empty document", "error", err)
		}
	}

	term, err := frame.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Fini()

	term.Screen().EnableMouse()
	w, h := term.Size()
	session.SetViewportSize(w, h)

	return loop(session, term, path)
}

// loop runs the input/render cycle until quit.
func loop(session *editor.Session, term *frame.Terminal, path string) int {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go term.Screen().ChannelEvents(events, quit)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	colorMode := style.ModeDark
	for {
		select {
		case <-ticker.C:
			session.PumpSpell()
			session.Render(term, time.Now())

		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				w, h := e.Size()
				session.SetViewportSize(w, h)

			case *tcell.EventMouse:
				handleMouse(session, e)
				session.Renderer().Fade().Touch(time.Now())

			case *tcell.EventKey:
				if e.Key() == tcell.KeyCtrlQ {
					close(quit)
					return 0
				}
				handleKey(session, e, path, &colorMode)
				session.Renderer().Fade().Touch(time.Now())
			}
			session.Render(term, time.Now())
		}
	}
}

func handleMouse(session *editor.Session, e *tcell.EventMouse) {
	x, y := e.Position()
	switch {
	case e.Buttons()&tcell.WheelUp != 0:
		session.ScrollBy(-3)
	case e.Buttons()&tcell.WheelDown != 0:
		session.ScrollBy(3)
	case e.Buttons()&tcell.Button1 != 0:
		session.Click(x, y, e.Modifiers()&tcell.ModShift != 0, e.When())
	}
}

func handleKey(session *editor.Session, e *tcell.EventKey, path string, colorMode *style.ColorMode) {
	extend := e.Modifiers()&tcell.ModShift != 0
	word := e.Modifiers()&tcell.ModCtrl != 0

	switch e.Key() {
	case tcell.KeyRune:
		_ = session.InsertText(string(e.Rune()))
	case tcell.KeyEnter:
		_ = session.InsertNewline()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		_ = session.DeleteBackward()
	case tcell.KeyDelete:
		_ = session.DeleteForward()
	case tcell.KeyLeft:
		if word {
			session.MoveWordLeft(extend)
		} else {
			session.MoveLeft(extend)
		}
	case tcell.KeyRight:
		if word {
			session.MoveWordRight(extend)
		} else {
			session.MoveRight(extend)
		}
	case tcell.KeyUp:
		session.MoveUp(extend)
	case tcell.KeyDown:
		session.MoveDown(extend)
	case tcell.KeyHome:
		session.MoveLineStart(extend)
	case tcell.KeyEnd:
		session.MoveLineEnd(extend)
	case tcell.KeyPgUp:
		session.MovePageUp(extend)
	case tcell.KeyPgDn:
		session.MovePageDown(extend)
	case tcell.KeyCtrlZ:
		_ = session.Undo()
	case tcell.KeyCtrlY:
		_ = session.Redo()
	case tcell.KeyCtrlA:
		session.SelectAll()
	case tcell.KeyCtrlC:
		session.Copy()
	case tcell.KeyCtrlX:
		_ = session.Cut()
	case tcell.KeyCtrlV:
		_ = session.Paste()
	case tcell.KeyCtrlB:
		_ = session.ToggleBold()
	case tcell.KeyCtrlU:
		_ = session.ToggleUnderline()
	case tcell.KeyCtrlS:
		if path != "" {
			_ = session.Save(path)
		}
	case tcell.KeyF2:
		if session.Renderer().Mode() == frame.ModePage {
			session.SetViewMode(frame.ModeContinuous)
		} else {
			session.SetViewMode(frame.ModePage)
		}
	case tcell.KeyF3:
		if *colorMode == style.ModeDark {
			*colorMode = style.ModeLight
		} else {
			*colorMode = style.ModeDark
		}
		session.SetColorMode(*colorMode)
	}
}
