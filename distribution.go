package papergen

import (
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Baseline weight tables (percent). Pattern weights are adjusted per
// subject before allocation, see patternWeightsFor.
var (
	PatternWeights = map[string]float64{
		PatternHowManyStatement: 30,
		PatternMS3Correct:       10,
		PatternMS4Correct:       4,
		PatternMS3Incorrect:     4,
		PatternMS4Incorrect:     2,
		PatternAssertionReason2: 12,
		PatternAssertionReason3: 8,
		PatternMS2Correct:       7,
		PatternMS2Incorrect:     3,
		PatternHowManyPairs:     6,
		PatternHowManySets:      4,
		PatternSingleCorrect:    10,
		PatternChronological:    0, // reserved per subject
		PatternGeographical:     0, // reserved per subject
		PatternSingleIncorrect:  0,
	}

	CognitiveWeights = map[string]float64{
		"Comprehension/Conceptual":   40,
		"Application/Analysis":       30,
		"Recall/Recognition":         20,
		"Higher Reasoning/Synthesis": 10,
	}

	DifficultyWeights = map[string]float64{
		"Moderate":  50,
		"Difficult": 35,
		"Easy":      15,
	}
)

// patternWeightsFor derives the pattern weight table for a subject.
// History reserves a mandatory 20% for chronological ordering and scales
// everything else to the remaining 80%; geography reserves 15% for
// geographical sequencing; every other subject gets 5% chronological.
func patternWeightsFor(subject string) map[string]float64 {
	working := make(map[string]float64, len(PatternWeights))
	for k, v := range PatternWeights {
		working[k] = v
	}

	s := strings.ToLower(subject)
	switch {
	case strings.Contains(s, "history"):
		for k := range working {
			if k != PatternChronological {
				working[k] = math.Round(working[k]*0.8*10) / 10
			}
		}
		working[PatternChronological] = 20
	case strings.Contains(s, "geography"):
		for k := range working {
			if k != PatternGeographical && k != PatternChronological {
				working[k] = math.Round(working[k]*0.85*10) / 10
			}
		}
		working[PatternGeographical] = 15
	default:
		for k := range working {
			if k != PatternChronological {
				working[k] = math.Round(working[k]*0.95*10) / 10
			}
		}
		working[PatternChronological] = 5
	}
	return working
}

// weightedDistribution allocates total slots across the weight table.
// Rounded allocations are capped at the remaining budget in descending
// weight order; the leftover is handed out one slot at a time to the
// categories that have not reached floor(total*w/100)+1, highest weight
// first. The returned slice always has exactly total entries.
func weightedDistribution(total int, weights map[string]float64) []string {
	if total <= 0 {
		return nil
	}

	type entry struct {
		option string
		weight float64
	}
	items := make([]entry, 0, len(weights))
	for option, weight := range weights {
		if weight > 0 {
			items = append(items, entry{option, weight})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].weight != items[j].weight {
			return items[i].weight > items[j].weight
		}
		return items[i].option < items[j].option
	})

	allocated := make(map[string]int, len(items))
	remaining := total
	for _, it := range items {
		count := int(math.Round(float64(total) * it.weight / 100))
		if count > remaining {
			count = remaining
		}
		allocated[it.option] = count
		remaining -= count
	}

	for remaining > 0 {
		progress := false
		for _, it := range items {
			if remaining <= 0 {
				break
			}
			theoreticalMax := int(float64(total)*it.weight/100) + 1
			if allocated[it.option] < theoreticalMax {
				allocated[it.option]++
				remaining--
				progress = true
			}
		}
		if !progress {
			// Every category is at its cap; dump the rest on the
			// highest-weight one so the sum invariant holds.
			allocated[items[0].option] += remaining
			remaining = 0
		}
	}

	result := make([]string, 0, total)
	for _, it := range items {
		for i := 0; i < allocated[it.option]; i++ {
			result = append(result, it.option)
		}
	}
	return result
}

// evenDistribution splits total across options with no weight table:
// total/k each, the total%k extras going to randomly chosen options so the
// remainder is not biased toward the first-listed one.
func evenDistribution(total int, options []string) []string {
	if total <= 0 || len(options) == 0 {
		return nil
	}

	base := total / len(options)
	remainder := total % len(options)

	shuffled := make([]string, len(options))
	copy(shuffled, options)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	result := make([]string, 0, total)
	for i, option := range shuffled {
		count := base
		if i < remainder {
			count++
		}
		for j := 0; j < count; j++ {
			result = append(result, option)
		}
	}
	rand.Shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result
}

// subjectFromTopic maps a free-text topic to one of the syllabus subjects
// for pattern-weight derivation. Falls back to the "Subject: Subtopic"
// prefix when no keyword matches.
func subjectFromTopic(topic string) string {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "geography"):
		return "Geography"
	case strings.Contains(t, "history"):
		return "History"
	case strings.Contains(t, "polity"):
		return "Polity"
	case strings.Contains(t, "economy"), strings.Contains(t, "economic"):
		return "Economy"
	case strings.Contains(t, "environment"), strings.Contains(t, "ecology"):
		return "Environment"
	case strings.Contains(t, "science"), strings.Contains(t, "technology"), strings.Contains(t, "tech"):
		return "Science & Tech"
	case strings.Contains(t, "current affairs"):
		return "Current Affairs"
	case strings.Contains(topic, ":"):
		return strings.TrimSpace(strings.SplitN(topic, ":", 2)[0])
	default:
		return strings.TrimSpace(topic)
	}
}

// ExpandRequirements turns sparse distribution rows into one fully-resolved
// requirement per question slot. Fields flagged for randomization are
// filled by weighted allocation (pattern, cognitive, difficulty) or even
// allocation (topic); fixed fields are replicated verbatim.
func ExpandRequirements(rows []RequirementRow) []QuestionRequirement {
	var result []QuestionRequirement

	for _, row := range rows {
		total := row.Count
		if total <= 0 {
			continue
		}

		var topics []string
		if row.RandomizeTopic {
			topics = evenDistribution(total, SyllabusSubjects)
		} else {
			topics = replicate(row.Topic, total)
		}

		var cognitives []string
		if row.RandomizeCognitive {
			cognitives = weightedDistribution(total, CognitiveWeights)
		} else {
			cognitives = replicate(row.Cognitive, total)
		}

		var difficulties []string
		if row.RandomizeDifficulty {
			difficulties = weightedDistribution(total, DifficultyWeights)
		} else {
			difficulties = replicate(row.Difficulty, total)
		}

		var patterns []string
		switch {
		case row.RandomizePattern && row.RandomizeTopic:
			if total < 20 {
				// Per-subject tables skew badly when each subject gets
				// only a question or two; use the mixed table instead.
				patterns = weightedDistribution(total, patternWeightsFor("Mixed"))
			} else {
				patterns = make([]string, 0, total)
				for subject, count := range countByValue(topics) {
					patterns = append(patterns, weightedDistribution(count, patternWeightsFor(subject))...)
				}
				rand.Shuffle(len(patterns), func(i, j int) {
					patterns[i], patterns[j] = patterns[j], patterns[i]
				})
			}
		case row.RandomizePattern:
			patterns = weightedDistribution(total, patternWeightsFor(subjectFromTopic(row.Topic)))
		default:
			patterns = replicate(row.Pattern, total)
		}

		for i := 0; i < total; i++ {
			result = append(result, QuestionRequirement{
				Topic:      pick(topics, i, ""),
				Pattern:    pick(patterns, i, PatternSingleCorrect),
				Cognitive:  pick(cognitives, i, "Comprehension/Conceptual"),
				Difficulty: pick(difficulties, i, "Moderate"),
			})
		}
	}

	return result
}

func replicate(value string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func countByValue(values []string) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	return counts
}

func pick(values []string, i int, fallback string) string {
	if i < len(values) && values[i] != "" {
		return values[i]
	}
	return fallback
}
