package common

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner は処理中であることを示すインジケータ。端末以外では何もしない。
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

// StartSpinner は w にスピナーを表示する。w が端末でなければ何もしない。
func StartSpinner(w io.Writer, description string) *Spinner {
	f, ok := w.(*os.File)
	if !ok || !IsTerminal(f) {
		return &Spinner{}
	}
	return newSpinner(w, description)
}

// IsTerminal は f が端末かどうかを返す
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newSpinner(w io.Writer, description string) *Spinner {
	s := &Spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetDescription(description),
			progressbar.OptionClearOnFinish(),
		),
		done: make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				_ = s.bar.Add(1)
			}
		}
	}()
	return s
}

// Stop はスピナーを消す。無効なスピナーに対して呼んでもよい。
func (s *Spinner) Stop() {
	if s.bar == nil {
		return
	}
	close(s.done)
	s.wg.Wait()
	_ = s.bar.Finish()
}
