// Package upload abstracts the image hosting collaborator: hand it a local
// file path, get back a public URL.
package upload

import "context"

type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
