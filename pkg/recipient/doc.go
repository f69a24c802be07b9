// Package recipient collects and de-duplicates notification recipients.
//
// A Collector accepts addresses one at a time, from pasted free text, or from
// uploaded CSV, TXT, and XLSX files. Email recipients are normalized and kept
// unique; role (group) recipients are appended as given.
//
//	c := recipient.NewCollector()
//	if err := c.AddSingle("joe@example.com"); errors.Is(err, recipient.ErrDuplicate) {
//	    ...
//	}
//	n, err := c.AddFromFile(data, "students.csv")
//
// A Collector belongs to a single wizard session and is not safe for
// concurrent use.
package recipient
