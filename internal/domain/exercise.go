// internal/domain/exercise.go
package domain

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	UserID      *string `bson:"userId,omitempty" json:"userId"` // nil for the shared default catalog
	// VideoKey is the object key of an optional demonstration video.
	VideoKey string `bson:"videoKey,omitempty" json:"-"`
}

// HasVideo reports whether a demonstration video has been attached.
func (e *Exercise) HasVideo() bool {
	return e.VideoKey != ""
}
