package workshopconfig

import "github.com/craftday/workshop-booking-service/pkg/txmanager"

// DBExecutor is the query surface the repository runs on: the plain handle
// outside transactions, the active transaction inside one.
type DBExecutor = txmanager.Executor
