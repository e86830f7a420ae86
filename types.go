package picstash

// ImageRecord is one uploaded image: a database-assigned id plus its
// free-form tags. The id doubles as the blob filename on disk.
type ImageRecord struct {
	ID   int64  `json:"id"`
	Tags string `json:"tags"`
}
