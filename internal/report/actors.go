package report

import "strings"

const maxActors = 3

// ExtractActors pulls candidate actor names from report rows. Row source
// text tends to follow the pattern "EventType: Actor action ...", so the
// first token after the colon is taken as a candidate. This is a best-effort
// heuristic for history cards, not an authoritative extraction; it may
// return nothing for free-form rows.
func ExtractActors(rows []Row) []string {
	seen := make(map[string]bool)
	var actors []string

	for _, row := range rows {
		name := actorCandidate(row.Source1)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		actors = append(actors, name)
		if len(actors) == maxActors {
			break
		}
	}

	return actors
}

func actorCandidate(source string) string {
	_, after, found := strings.Cut(source, ":")
	if !found {
		return ""
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
