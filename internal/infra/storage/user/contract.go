package user

import "github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"

// DBExecutor интерфейс выполнения запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor
