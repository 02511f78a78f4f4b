package search

// Categories returns the supported ML-related arXiv categories mapped to
// their display names.
func Categories() map[string]string {
	return map[string]string{
		"cs.AI":   "Artificial Intelligence",
		"cs.LG":   "Machine Learning",
		"cs.CL":   "Computation and Language",
		"cs.CV":   "Computer Vision",
		"cs.NE":   "Neural and Evolutionary Computing",
		"cs.RO":   "Robotics",
		"stat.ML": "Machine Learning (Statistics)",
	}
}
