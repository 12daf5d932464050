package ports

// ReportRenderer renders tabular records to bytes. Render fails when there
// are no records or when a record is missing one of the requested fields.
type ReportRenderer interface {
	Render(fields []string, records []map[string]string) ([]byte, error)
}
