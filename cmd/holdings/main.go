package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"holdings/internal/config"
	"holdings/internal/loader"
	"holdings/internal/renderer"
	"holdings/internal/screen"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rd, err := renderer.New(cfg.Style, 0)
	if err != nil {
		logger.Fatalf("renderer: %v", err)
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	ld := loader.New(cfg.APIURL, client, logger)
	alert := screen.NotifierFunc(func(msg string) {
		fmt.Fprintf(os.Stderr, "Alert: %s\n", msg)
	})

	if err := run(ctx, screen.New(ld, alert, logger), rd, os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatalf("holdings: %v", err)
	}
}

type viewRenderer interface {
	Render(w io.Writer, v screen.View) error
}

// run mounts the screen, renders it once loaded and then re-renders on every
// toggle. An empty line or "t" toggles the details, "q" or EOF quits.
func run(ctx context.Context, s *screen.Screen, rd viewRenderer, in io.Reader, out io.Writer, log *logrus.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Activate(ctx)
	defer s.Deactivate()

	if err := rd.Render(out, s.View()); err != nil {
		return err
	}
	select {
	case <-s.Done():
	case <-ctx.Done():
		return nil
	}
	if err := rd.Render(out, s.View()); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch strings.ToLower(line) {
			case "q", "quit":
				return nil
			case "", "t", "toggle":
				s.ToggleDetails()
				if err := rd.Render(out, s.View()); err != nil {
					return err
				}
			default:
				log.Debugf("ignoring input %q", line)
				fmt.Fprintln(out, "t: toggle details, q: quit")
			}
		}
	}
}
