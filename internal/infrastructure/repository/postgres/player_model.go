package postgres

type playerInsertModel struct {
	ID         string `db:"id"`
	FullName   string `db:"full_name"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	Position   string `db:"position"`
	Team       string `db:"team"`
	Conference string `db:"conference"`
	ClassYear  string `db:"class_year"`
	Height     string `db:"height"`
	Weight     string `db:"weight"`
	Raw        string `db:"raw"`
}

type playerSearchRowModel struct {
	ID           string `db:"id"`
	FullName     string `db:"full_name"`
	Team         string `db:"team"`
	Position     string `db:"position"`
	Conference   string `db:"conference"`
	ClassYear    string `db:"class_year"`
	Abbreviation string `db:"abbreviation"`
	School       string `db:"school"`
}
