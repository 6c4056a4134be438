package konsole

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/command"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/rs/zerolog"
)

// Profile names shipped in the repository's konsole directory
const (
	DarkProfile  = "Dark"
	LightProfile = "Light"
)

// darkIndicators are substrings that mark a color scheme as dark
var darkIndicators = []string{"dark", "night", "black", "monokai", "dracula", "nord"}

// IsDark guesses from a color scheme name whether it is a dark scheme
func IsDark(scheme string) bool {
	lower := strings.ToLower(scheme)
	for _, ind := range darkIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// ProfileFor maps a color scheme name to a Konsole profile
func ProfileFor(scheme string) string {
	if IsDark(scheme) {
		return DarkProfile
	}
	return LightProfile
}

// Switcher talks to the KDE config tools and to running Konsole instances
type Switcher struct {
	Runner command.Runner
	// KonsoleRC is the path of konsolerc.
	KonsoleRC string
	// Out receives the human-readable progress lines.
	Out io.Writer

	logger zerolog.Logger
}

// NewSwitcher creates a switcher that writes progress to out
func NewSwitcher(runner command.Runner, konsolerc string, out io.Writer) *Switcher {
	return &Switcher{
		Runner:    runner,
		KonsoleRC: konsolerc,
		Out:       out,
		logger:    logging.GetLogger("konsole.switcher"),
	}
}

// ColorScheme reads the current Plasma color scheme; empty when unknown
func (s *Switcher) ColorScheme(ctx context.Context) string {
	out, err := s.Runner.Output(ctx, command.New("kreadconfig6", "--group", "General", "--key", "ColorScheme"))
	if err != nil {
		s.logger.Debug().Err(err).Msg("Could not read color scheme")
		return ""
	}
	return strings.TrimSpace(out)
}

// TargetProfile is the profile matching the current color scheme
func (s *Switcher) TargetProfile(ctx context.Context) string {
	return ProfileFor(s.ColorScheme(ctx))
}

func (s *Switcher) konsolePIDs(ctx context.Context) []int {
	// pgrep exits 1 when nothing matches.
	out, err := s.Runner.Output(ctx, command.New("pgrep", "-x", "konsole"))
	if err != nil {
		return nil
	}
	var pids []int
	for _, line := range strings.Split(out, "\n") {
		pid, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			pids = append(pids, pid)
		}
	}
	return pids
}

func (s *Switcher) sessions(ctx context.Context, service string) []string {
	out, err := s.Runner.Output(ctx, command.New("qdbus-qt6", service, "/Sessions"))
	if err != nil {
		return nil
	}
	var sessions []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "/Sessions/") {
			sessions = append(sessions, line)
		}
	}
	return sessions
}

// SwitchAll moves every session of every running Konsole to profile and
// returns how many sessions accepted the change
func (s *Switcher) SwitchAll(ctx context.Context, profile string) int {
	switched := 0
	for _, pid := range s.konsolePIDs(ctx) {
		service := fmt.Sprintf("org.kde.konsole-%d", pid)
		for _, session := range s.sessions(ctx, service) {
			if _, err := s.Runner.Output(ctx, command.New("qdbus-qt6", service, session, "setProfile", profile)); err != nil {
				s.logger.Debug().Err(err).Str("session", session).Msg("setProfile failed")
				continue
			}
			switched++
		}
	}
	fmt.Fprintf(s.Out, "Switched %d Konsole session(s) to '%s' profile\n", switched, profile)
	return switched
}

// SetDefaultProfile makes profile the default for new Konsole windows
func (s *Switcher) SetDefaultProfile(ctx context.Context, profile string) error {
	cmd := command.New("kwriteconfig6",
		"--file", s.KonsoleRC,
		"--group", "Desktop Entry",
		"--key", "DefaultProfile",
		profile+".profile")
	if _, err := s.Runner.Output(ctx, cmd); err != nil {
		fmt.Fprintf(s.Out, "Failed to update konsolerc: %v\n", err)
		return err
	}
	return nil
}

// Apply switches running sessions and the default profile
func (s *Switcher) Apply(ctx context.Context, profile string) {
	s.SwitchAll(ctx, profile)
	_ = s.SetDefaultProfile(ctx, profile)
}
