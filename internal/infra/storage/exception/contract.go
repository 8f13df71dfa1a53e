package exception

import "github.com/BongoShiny/agenda-pro-new-sub001/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor
