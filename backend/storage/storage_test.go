package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/backend/apperr"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestPrepareAvatarFitsLargeImages(t *testing.T) {
	avatar, err := PrepareAvatar(encodePNG(t, 1024, 800), 2<<20)
	require.NoError(t, err)
	assert.Equal(t, "image/png", avatar.ContentType)
	assert.Equal(t, "png", avatar.Ext)

	img, err := png.Decode(bytes.NewReader(avatar.Data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestPrepareAvatarJPEG(t *testing.T) {
	avatar, err := PrepareAvatar(encodeJPEG(t, 64, 64), 2<<20)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", avatar.ContentType)
	assert.Equal(t, "jpg", avatar.Ext)
}

func TestPrepareAvatarRejects(t *testing.T) {
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

	cases := map[string][]byte{
		"empty":     nil,
		"too large": encodePNG(t, 64, 64),
		"gif":       gif,
		"text":      []byte("definitely not an image"),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			limit := int64(2 << 20)
			if name == "too large" {
				limit = 10
			}
			_, err := PrepareAvatar(data, limit)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "%v", err)
		})
	}
}

func TestSupabaseStorePut(t *testing.T) {
	var gotPath, gotAuth, gotUpsert, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewSupabaseStore(srv.URL+"/", "service-key", "avatars")
	url, err := store.Put(context.Background(), "user-1/avatar.png", "image/png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/avatars/user-1/avatar.png", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, []byte("png"), gotBody)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/avatars/user-1/avatar.png", url)
}

func TestSupabaseStorePutFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewSupabaseStore(srv.URL, "k", "missing").Put(context.Background(), "a.png", "image/png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket not found")

	_, err = NewSupabaseStore("", "", "avatars").Put(context.Background(), "a.png", "image/png", []byte("x"))
	assert.Error(t, err)
}
