package output

// Placeholders for values a task or database does not have.
const (
	TableMissing  = "-"
	DetailMissing = "None"
)
