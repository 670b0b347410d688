// Package archive keeps the raw body of every provider callback in object
// storage so a disputed payment can be replayed against what was received.
package archive

//go:generate go run go.uber.org/mock/mockgen -source=./archive.go -destination=../mocks/archive_mock.go -package=mocks

import (
	"context"
	"path"

	"tourismrelay/infras/s3"
	"tourismrelay/shared/constant"
	"tourismrelay/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const root = "callbacks"

type Archive interface {
	// Store uploads body in the background. Failures are logged only.
	Store(ctx context.Context, channel string, body []byte)
}

type archiveImpl struct {
	storage s3.S3
}

func New(storage s3.S3) Archive {
	return &archiveImpl{storage: storage}
}

// Key returns the object directory for callbacks received on channel on day,
// e.g. callbacks/confirmation/2024-03-14.
func Key(channel, day string) string {
	return path.Join(root, channel, day)
}

func (a *archiveImpl) Store(ctx context.Context, channel string, body []byte) {
	if !a.storage.Enabled() || len(body) == 0 {
		return
	}

	directory := Key(channel, timezone.Format(timezone.Now(), constant.DateOnlyFormat))
	data := append([]byte(nil), body...)

	go func() {
		c := context.WithoutCancel(ctx)

		url, err := a.storage.UploadBytes(c, directory, uuid.NewString()+".json", constant.ContentTypeJSON, data)
		if err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to archive provider callback")

			return
		}

		log.Debug().Str("channel", channel).Str("url", url).Msg("provider callback archived")
	}()
}
