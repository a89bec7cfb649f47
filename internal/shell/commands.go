package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/cookiejar/internal/metrics"
	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

// helpText lists the commands in the order "help" prints them.
var helpText = [][2]string{
	{"deposit <type> [n]", "put n cookies (default 1) of a type into the jar"},
	{"withdraw [type]", "take the newest cookie, or the oldest of a type"},
	{"size", "print how many cookies the jar holds"},
	{"capacity [n]", "print or change the jar capacity"},
	{"counts", "print the number of cookies per type"},
	{"list", "print the cookies in deposit order"},
	{"show", "draw the jar"},
	{"check", "verify the jar's bookkeeping"},
	{"types", "list the cookie types"},
	{"metrics", "print jar metrics"},
	{"help", "print this help"},
	{"quit", "leave the shell"},
}

func commands() map[string]handlerFunc {
	return map[string]handlerFunc{
		"deposit":  (*Shell).deposit,
		"withdraw": (*Shell).withdraw,
		"size":     (*Shell).size,
		"capacity": (*Shell).capacity,
		"counts":   (*Shell).counts,
		"list":     (*Shell).list,
		"show":     (*Shell).show,
		"check":    (*Shell).check,
		"types":    (*Shell).listTypes,
		"metrics":  (*Shell).printMetrics,
		"help":     (*Shell).help,
	}
}

// splitCount separates a trailing integer count from a multi-word type
// name: ["peanut", "butter", "3"] yields ("peanut butter", 3). Without a
// count, n is 1.
func splitCount(args []string) (name string, n int) {
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[len(args)-1]); err == nil {
			return strings.Join(args[:len(args)-1], " "), v
		}
	}
	return strings.Join(args, " "), 1
}

// deposit stores cookies one at a time. A batch stops at the first failure;
// cookies stored before it stay in the jar.
func (s *Shell) deposit(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: deposit <type> [n]", ErrUsage)
	}
	name, n := splitCount(args)
	if n < 0 {
		return fmt.Errorf("%w: %d", types.ErrNegativeQuantity, n)
	}
	typ, err := types.ParseCookieType(name)
	if err != nil {
		return err
	}

	stored := make([]types.Cookie, 0, min(n, s.jar.Free()))
	for i := 0; i < n; i++ {
		c, err := types.NewCookie(s.ids, typ)
		if err == nil {
			err = s.jar.Deposit(c)
		}
		if err != nil {
			s.log.Info("deposit rejected", "op", "deposit", "type", typ, "size", s.jar.Size(), "error", err)
			if n > 1 {
				_ = s.report(stored)
				return fmt.Errorf("deposited %d of %d: %w", i, n, err)
			}
			return err
		}
		stored = append(stored, c)
		s.log.Debug("deposit", "op", "deposit", "type", typ, "id", c.ID(), "size", s.jar.Size())
		if s.opts.Metrics != nil {
			s.opts.Metrics.Deposited(c)
		}
	}
	return s.report(stored)
}

func (s *Shell) report(stored []types.Cookie) error {
	if s.opts.JSON {
		return s.emit(stored, "")
	}
	for _, c := range stored {
		if _, err := s.good.Fprintf(s.out, "+ %s\n", c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) withdraw(args []string) error {
	var (
		c    types.Cookie
		err  error
		mode = metrics.ModeNewest
	)
	if len(args) == 0 {
		c, err = s.jar.Withdraw()
	} else {
		mode = metrics.ModeOldest
		var typ types.CookieType
		typ, err = types.ParseCookieType(strings.Join(args, " "))
		if err == nil {
			c, err = s.jar.WithdrawType(typ)
		}
	}
	if err != nil {
		s.log.Info("withdraw rejected", "op", "withdraw", "filter", strings.Join(args, " "), "size", s.jar.Size(), "error", err)
		return err
	}
	s.log.Debug("withdraw", "op", "withdraw", "mode", mode, "type", c.Type(), "id", c.ID(), "size", s.jar.Size())
	if s.opts.Metrics != nil {
		s.opts.Metrics.Withdrew(c, mode)
	}
	if s.opts.JSON {
		return s.emit(c, "")
	}
	_, err = s.good.Fprintf(s.out, "- %s\n", c)
	return err
}

func (s *Shell) size(args []string) error {
	return s.emit(
		map[string]int{"size": s.jar.Size(), "capacity": s.jar.Capacity()},
		fmt.Sprintf("%d/%d", s.jar.Size(), s.jar.Capacity()),
	)
}

func (s *Shell) capacity(args []string) error {
	if len(args) == 0 {
		return s.emit(map[string]int{"capacity": s.jar.Capacity()}, strconv.Itoa(s.jar.Capacity()))
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: capacity [n]", ErrUsage)
	}
	n, err := types.ParseCapacity(args[0])
	if err != nil {
		return err
	}
	old := s.jar.Capacity()
	if err := s.jar.SetCapacity(n); err != nil {
		return err
	}
	s.log.Debug("capacity", "op", "capacity", "from", old, "to", n, "size", s.jar.Size())
	if n < s.jar.Size() {
		s.log.Warn("capacity below size", "capacity", n, "size", s.jar.Size())
	}
	return s.emit(map[string]int{"capacity": n}, fmt.Sprintf("capacity %d -> %d", old, n))
}

func (s *Shell) counts(args []string) error {
	counts := s.jar.Counts()
	if s.opts.JSON {
		return s.emit(counts, "")
	}
	for _, t := range types.CookieTypes() {
		if _, err := fmt.Fprintf(s.out, "%-15s %d\n", t.String()+":", counts[t]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) list(args []string) error {
	held := s.jar.Cookies()
	if s.opts.JSON {
		return s.emit(held, "")
	}
	if len(held) == 0 {
		_, err := fmt.Fprintln(s.out, "(empty)")
		return err
	}
	for i, c := range held {
		if _, err := fmt.Fprintf(s.out, "%3d  %s\n", i+1, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) show(args []string) error {
	_, err := fmt.Fprintln(s.out, types.Render(s.jar.Size(), s.opts.Marker))
	return err
}

func (s *Shell) check(args []string) error {
	if err := s.jar.Check(); err != nil {
		s.log.Error("jar check failed", "error", err)
		return err
	}
	return s.emit(map[string]bool{"ok": true}, "ok")
}

func (s *Shell) listTypes(args []string) error {
	all := types.CookieTypes()
	if s.opts.JSON {
		return s.emit(all, "")
	}
	for _, t := range all {
		if _, err := fmt.Fprintln(s.out, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) printMetrics(args []string) error {
	if s.opts.Metrics == nil {
		return ErrMetricsDisabled
	}
	return s.opts.Metrics.WriteText(s.out)
}

func (s *Shell) help(args []string) error {
	for _, h := range helpText {
		if _, err := fmt.Fprintf(s.out, "  %-20s %s\n", h[0], h[1]); err != nil {
			return err
		}
	}
	return nil
}
