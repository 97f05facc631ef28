package cli

import "io"

// ShowHelp prints usage information for moodctl.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Mood Meter
==========

Scores how much your teams are dragging your mood down.

Usage:
  moodctl [options]

Options:
  -config string
        Path to the team document (default from MOOD_TEAMS_FILE or teams_config.json)
  -update-team string
        Team name to update (case-insensitive, partial names match)
  -wins int
        Number of wins
  -losses int
        Number of losses
  -ties int
        Number of ties
  -rivalry-loss string
        Add a rivalry loss (opponent name)
  -f1-position int
        Update the driver's championship position
  -f1-dnf int
        Number of recent DNFs
  -fantasy-wins int
        Fantasy team wins
  -fantasy-losses int
        Fantasy team losses
  -refresh-fantasy
        Refresh fantasy data from ESPN before scoring
  -no-espn
        Disable ESPN and use the document only
  -espn-help
        Show instructions for ESPN setup
  -json
        Print the score as JSON instead of the text report
  -help
        Show this help message

Examples:
  # Print the report
  moodctl

  # Record a rivalry loss
  moodctl -update-team cowboys -wins 3 -losses 4 -rivalry-loss Eagles

  # Pull the fantasy record from ESPN, then print JSON
  moodctl -refresh-fantasy -json
`)
}

// ShowESPNHelp prints how to find the ESPN league credentials.
func ShowESPNHelp(w io.Writer) {
	_, _ = io.WriteString(w, `ESPN FANTASY SETUP
==================

1. LEAGUE ID
   Open your league page. The number after "leagueId=" in
   https://fantasy.espn.com/football/league?leagueId=123456 is the league ID.

2. TEAM ID (optional)
   Take it from your team page URL, or set the team name instead and the
   team is matched by name.

3. PRIVATE LEAGUES
   In the browser developer tools, open the cookies for
   https://fantasy.espn.com and copy espn_s2 and SWID (a GUID in braces).

4. YEAR
   The current season year, e.g. 2025.

Set them in the environment:
  ESPN_LEAGUE_ID, ESPN_YEAR, ESPN_TEAM_ID, ESPN_TEAM_NAME, ESPN_SWID, ESPN_S2

or in the "espn" block of fantasy_team in the team document:
  {"league_id": 123456, "year": 2025, "team_id": 3, "espn_s2": "...", "swid": "{...}"}

Public leagues need neither espn_s2 nor SWID.
`)
}
