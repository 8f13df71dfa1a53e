package booking

import "github.com/BongoShiny/agenda-pro-new-sub001/pkg/dbmetrics"

// DBExecutor принимает *sql.DB или *dbmetrics.DB, транзакция берется из контекста
type DBExecutor = dbmetrics.DBExecutor
