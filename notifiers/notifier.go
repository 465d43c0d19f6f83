package notifiers

// Notifier notify download run result
type Notifier interface {
	Notify(*RunSummary)
	Close()
}
