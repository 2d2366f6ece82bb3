package usecase

import (
	"context"
	"path/filepath"

	"github.com/forPelevin/hoopcut/internal/artifacts"
	"github.com/forPelevin/hoopcut/internal/textutil"
)

// publish uploads stint clips and reels under <Player_Name>/<game>/ and
// records their URLs in the manifest.
func (u Usecase) publish(ctx context.Context, r *run) error {
	if u.d.Publisher == nil {
		return nil
	}
	log := r.stage("publish")

	m := &r.result.Manifest
	for i := range m.Stints {
		url, err := u.upload(ctx, r, m.Stints[i].File)
		if err != nil {
			return err
		}
		m.Stints[i].URL = url
	}
	for i := range m.Highlights {
		url, err := u.upload(ctx, r, m.Highlights[i].File)
		if err != nil {
			return err
		}
		m.Highlights[i].URL = url
	}
	log.Info("clips published", "stints", len(m.Stints), "reels", len(m.Highlights))
	return nil
}

// PublishManifest uploads the manifest written by Run.
func (u Usecase) PublishManifest(ctx context.Context, ws artifacts.Workspace) (string, error) {
	if u.d.Publisher == nil {
		return "", nil
	}
	rel, err := filepath.Rel(ws.PlayerDir(), ws.ManifestPath())
	if err != nil {
		return "", err
	}
	return u.d.Publisher.Publish(ctx, ws.ManifestPath(), objectKey(ws, filepath.ToSlash(rel)))
}

func (u Usecase) upload(ctx context.Context, r *run, rel string) (string, error) {
	local := filepath.Join(r.ws.PlayerDir(), filepath.FromSlash(rel))
	return u.d.Publisher.Publish(ctx, local, objectKey(r.ws, rel))
}

func objectKey(ws artifacts.Workspace, rel string) string {
	return textutil.Slug(ws.Player) + "/" + ws.Game + "/" + rel
}
