package data

import "database/sql"

type Models struct {
	Plays PlayModel
}

func NewModels(initDb *sql.DB) Models {
	return Models{
		Plays: PlayModel{db: initDb},
	}
}
