package services

import "github.com/custodia-labs/seek/internal/core/domain"

// Deduplicate collapses records sharing an ID into one, keeping the
// position of the first occurrence. A later duplicate replaces the present
// record unless the present record is hydrated.
func Deduplicate(records []domain.Crate) []domain.Crate {
	index := make(map[string]int, len(records))
	out := make([]domain.Crate, 0, len(records))

	for _, c := range records {
		i, seen := index[c.ID]
		if !seen {
			index[c.ID] = len(out)
			out = append(out, c)
			continue
		}
		if out[i].Hydrated {
			continue
		}
		out[i] = c
	}
	return out
}

// Annotate stamps every record with the project and installed versions from env,
// whichever source produced it.
func Annotate(records []domain.Crate, env *domain.Environment) {
	for i := range records {
		env.Annotate(&records[i])
	}
}
