// Package cli implements moodctl: it applies record updates to the team
// document, optionally refreshes the fantasy team, and prints the report.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
)

// ErrUsage reports an invalid flag combination.
var ErrUsage = errors.New("invalid usage")

// optionalInt is an int flag that remembers whether it was set.
type optionalInt struct {
	v *int
}

func (o *optionalInt) String() string {
	if o == nil || o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	o.v = &n
	return nil
}

// Options holds the parsed command line. Nil counts were not given.
type Options struct {
	Config string

	UpdateTeam  string
	Wins        *int
	Losses      *int
	Ties        *int
	RivalryLoss string

	F1Position *int
	F1DNFs     *int

	FantasyWins   *int
	FantasyLosses *int

	RefreshFantasy bool
	NoESPN         bool
	ESPNHelp       bool
	JSON           bool
	Help           bool
}

// HasTeamUpdate reports whether any team field was given.
func (o Options) HasTeamUpdate() bool {
	return o.Wins != nil || o.Losses != nil || o.Ties != nil || o.RivalryLoss != ""
}

// HasDriverUpdate reports whether any driver field was given.
func (o Options) HasDriverUpdate() bool {
	return o.F1Position != nil || o.F1DNFs != nil
}

// HasRosterUpdate reports whether any fantasy record field was given.
func (o Options) HasRosterUpdate() bool {
	return o.FantasyWins != nil || o.FantasyLosses != nil
}

// Parse reads args (without the program name). Flag errors are written
// to errOut.
func Parse(args []string, errOut io.Writer) (Options, error) {
	var (
		o                          Options
		wins, losses, ties         optionalInt
		f1Position, f1DNFs         optionalInt
		fantasyWins, fantasyLosses optionalInt
	)

	fs := flag.NewFlagSet("moodctl", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() { ShowHelp(errOut) }

	fs.StringVar(&o.Config, "config", "", "Path to the team document (default from MOOD_TEAMS_FILE or teams_config.json)")
	fs.StringVar(&o.UpdateTeam, "update-team", "", "Team name to update")
	fs.Var(&wins, "wins", "Number of wins")
	fs.Var(&losses, "losses", "Number of losses")
	fs.Var(&ties, "ties", "Number of ties")
	fs.StringVar(&o.RivalryLoss, "rivalry-loss", "", "Add a rivalry loss (opponent name)")
	fs.Var(&f1Position, "f1-position", "Update the driver's championship position")
	fs.Var(&f1DNFs, "f1-dnf", "Number of recent DNFs")
	fs.Var(&fantasyWins, "fantasy-wins", "Fantasy team wins")
	fs.Var(&fantasyLosses, "fantasy-losses", "Fantasy team losses")
	fs.BoolVar(&o.RefreshFantasy, "refresh-fantasy", false, "Refresh fantasy data from ESPN")
	fs.BoolVar(&o.NoESPN, "no-espn", false, "Disable ESPN and use the document only")
	fs.BoolVar(&o.ESPNHelp, "espn-help", false, "Show instructions for ESPN setup")
	fs.BoolVar(&o.JSON, "json", false, "Print the score as JSON instead of the text report")
	fs.BoolVar(&o.Help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	o.Wins, o.Losses, o.Ties = wins.v, losses.v, ties.v
	o.F1Position, o.F1DNFs = f1Position.v, f1DNFs.v
	o.FantasyWins, o.FantasyLosses = fantasyWins.v, fantasyLosses.v

	if o.HasTeamUpdate() && o.UpdateTeam == "" {
		return Options{}, fmt.Errorf("%w: -wins, -losses, -ties and -rivalry-loss need -update-team", ErrUsage)
	}
	if o.RefreshFantasy && o.NoESPN {
		return Options{}, fmt.Errorf("%w: -refresh-fantasy and -no-espn are exclusive", ErrUsage)
	}
	return o, nil
}
