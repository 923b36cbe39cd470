package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yourusername/exercise-hub/internal/storage"
)

// LoadErrorKind は読み込み失敗の種類です。
type LoadErrorKind int

const (
	// SourceUnavailable はデータファイルを読めなかったことを表します。
	SourceUnavailable LoadErrorKind = iota + 1
	// MalformedData はデータが JSON 配列として解釈できなかったことを表します。
	MalformedData
)

func (k LoadErrorKind) String() string {
	switch k {
	case SourceUnavailable:
		return "source unavailable"
	case MalformedData:
		return "malformed data"
	default:
		return "unknown"
	}
}

// LoadError はカタログの読み込みエラーです。
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog %s (%s): %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

const jsonMIME = "application/json"

// Load はデータソースからカタログを読み込みます。レコードの順序は保持されます。
func Load(ctx context.Context, src storage.Loader, name string) ([]Exercise, error) {
	data, err := src.Load(ctx, name)
	if err != nil {
		return nil, &LoadError{Kind: SourceUnavailable, Path: name, Err: err}
	}

	// json.Unmarshal は null を空の配列として受け入れてしまうため、先に内容を判定して拒否する。
	// 圧縮ファイルや画像など JSON 以外が置かれた場合も、検出した型をエラーに含める。
	if detected := mimetype.Detect(data); !isJSON(detected) {
		return nil, &LoadError{
			Kind: MalformedData,
			Path: name,
			Err:  fmt.Errorf("unexpected content type %s", detected.String()),
		}
	}

	var exercises []Exercise
	if err := json.Unmarshal(data, &exercises); err != nil {
		return nil, &LoadError{Kind: MalformedData, Path: name, Err: err}
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	return exercises, nil
}

// isJSON は検出結果が JSON かその派生形式かを返します。
func isJSON(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(jsonMIME) {
			return true
		}
	}
	return false
}
