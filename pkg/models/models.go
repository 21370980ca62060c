package models

// Post is one guestbook entry. The document-database strategy assigns ID from
// the creation clock (millisecond epoch), so it is client-generated, not
// database-assigned. Timestamp is whole seconds since epoch and is the sort key
// for every view: newest first.
type Post struct {
	ID        int64  `json:"id" bson:"id"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
	Name      string `json:"name" bson:"name"`
	Content   string `json:"content" bson:"content"`

	// PasswordHash is stored by the document-database strategy only and is
	// never serialized back to clients.
	PasswordHash string `json:"-" bson:"passwordHash,omitempty"`
}

// Page is one slice of the guestbook plus the page count derived from the
// backend's total.
type Page struct {
	Posts      []Post
	TotalPages int
}
