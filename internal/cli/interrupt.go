package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler manages graceful shutdown with friendly messages.
type InterruptHandler struct {
	writer        io.Writer
	cancelFunc    context.CancelFunc
	notify        func(chan<- os.Signal)
	stop          func(chan<- os.Signal)
	signals       chan os.Signal
	interrupted   bool
	reportPending bool
	mu            sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
		notify: func(c chan<- os.Signal) { signal.Notify(c, os.Interrupt, syscall.SIGTERM) },
		stop:   signal.Stop,
	}
}

// HandleInterrupts returns a context that is canceled on SIGINT or SIGTERM.
// When reportPending is set the message tells the user the report for the
// files processed so far is still written.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, reportPending bool) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.cancelFunc = cancel
	h.reportPending = reportPending

	h.signals = make(chan os.Signal, 1)
	h.notify(h.signals)

	go func() {
		select {
		case <-h.signals:
			h.mu.Lock()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage()
			}
			h.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// Stop releases the signal subscription and the derived context.
func (h *InterruptHandler) Stop() {
	if h.signals != nil {
		h.stop(h.signals)
	}
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n\n" + FormatWarning("Scan interrupted!")

	if h.reportPending {
		msg += "\n" + FormatInfo("Writing the report for the files processed so far.")
	}

	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort - we're shutting down anyway
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
