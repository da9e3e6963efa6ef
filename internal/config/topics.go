package config

const (
	// TopicLeadsChanged is the NSQ topic for lead create/update/delete events.
	TopicLeadsChanged = "leads.changed"

	// TopicJobsChanged is the NSQ topic for job create/update/delete events.
	TopicJobsChanged = "jobs.changed"
)
