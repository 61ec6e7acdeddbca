// Package retry retries operations that fail for transient reasons, in
// practice opening a pool against a PostgreSQL server that is still starting,
// restarting, or out of connection slots.
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(3, retry.WithInitialDelay(100*time.Millisecond)),
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Statement-level failures of the load pipeline (constraint violations,
// malformed values) are fatal to the classifier and never retried.
package retry
