package entities

const DefaultChallengeTarget = 12

// Challenge is the yearly reading goal counter.
type Challenge struct {
	Year      int `json:"year"`
	Target    int `json:"target"`
	BooksRead int `json:"booksRead"`
}

// Progress returns completion as a percentage capped at 100.
func (c Challenge) Progress() float64 {
	if c.Target <= 0 {
		return 0
	}
	p := 100 * float64(c.BooksRead) / float64(c.Target)
	if p > 100 {
		return 100
	}
	return p
}

func (c Challenge) Remaining() int {
	if r := c.Target - c.BooksRead; r > 0 {
		return r
	}
	return 0
}

func (c Challenge) Motivation() string {
	p := c.Progress()
	switch {
	case p == 0:
		return "Start your reading journey! Add your first book to begin."
	case p < 25:
		return "Great start! Every book counts toward your goal."
	case p < 50:
		return "You're making progress! Keep up the good work."
	case p < 75:
		return "Halfway there! You're doing amazing."
	case p < 100:
		return "Almost there! Just a few more books to go."
	default:
		return "Congratulations! You've reached your reading goal!"
	}
}
