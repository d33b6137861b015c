package resource

import "github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
