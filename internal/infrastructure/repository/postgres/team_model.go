package postgres

type teamInsertModel struct {
	School       string `db:"school"`
	Mascot       string `db:"mascot"`
	Abbreviation string `db:"abbreviation"`
	Conference   string `db:"conference"`
	Division     string `db:"division"`
	Location     string `db:"location"`
	Raw          string `db:"raw"`
}
