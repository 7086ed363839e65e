// Package jobs provides scheduled background tasks of the order tracker.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds precision:
//
//   - OverdueWatchJob (every minute) updates the overdue and in-progress
//     gauges and logs orders that just became overdue.
//   - FeedTickJob (every second) re-sends the board to websocket clients so
//     elapsed times keep moving.
//   - SessionPurgeJob (every 30 seconds) drops scan sessions nobody answered.
//   - SnapshotRefreshJob (every 15 seconds by default) reloads the snapshot
//     when storage has no change notifications.
//
// JobManager starts them in order and stops them in reverse:
//
//	jobManager := jobs.NewJobManager(overdue, tick, purge)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A stopped job cancels the context of its running invocation and waits
// for it to return.
package jobs
