package domain

// Course is a catalog entry populated by the portal scraper.
type Course struct {
	Code       string `db:"code"`
	Title      string `db:"title"`
	Building   string `db:"building"`
	Room       string `db:"room"`
	Days       string `db:"days"`
	Time       string `db:"time"`
	Instructor string `db:"instructor"`
}

// Location joins building and room for display.
func (c Course) Location() string {
	switch {
	case c.Building == "":
		return c.Room
	case c.Room == "":
		return c.Building
	}
	return c.Building + " " + c.Room
}
