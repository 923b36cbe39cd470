// Package catalog は種目カタログの読み込み・検索・ページ分割を提供します。
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Exercise はカタログの1レコードです。
type Exercise struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Level          string       `json:"level"`
	Equipment      string       `json:"equipment"`
	PrimaryMuscles []string     `json:"primaryMuscles"`
	Instructions   Instructions `json:"instructions"`
	Images         []string     `json:"images"`
}

// FirstImage は先頭の画像パスを返します。画像がなければ空文字です。
func (e Exercise) FirstImage() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0]
}

// Instructions は手順の説明です。JSON では文字列・文字列配列のどちらも受け付けます。
type Instructions []string

// UnmarshalJSON は文字列または文字列配列をデコードします。
func (i *Instructions) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*i = nil
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Instructions{s}
		return nil
	}
	var steps []string
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("instructions must be a string or an array of strings: %w", err)
	}
	*i = steps
	return nil
}

// String は手順を空白区切りで連結します。
func (i Instructions) String() string {
	return strings.Join(i, " ")
}
