package numerology

// QuickInsight composes the one-sentence insight of the free report from four
// fixed word lists.
func QuickInsight(seed, day, month, lifePath int) string {
	w := tables().QuickInsight
	action := pick(w.Actions, seed)
	object := pick(w.Objects, seed+day)
	ritual := pick(w.Rituals, seed*month)
	benefit := pick(w.Benefits, seed+lifePath)
	return action + " " + object + " " + ritual + " to " + benefit + "."
}

func pick(list []string, i int) string {
	if len(list) == 0 {
		return ""
	}
	return list[mod(i, len(list))]
}
