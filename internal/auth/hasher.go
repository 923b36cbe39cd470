// Package auth は登録・ログインとセッションによるアクセス制御を提供します。
package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost は bcrypt の既定のコスト係数です。
const DefaultCost = 12

// maxInputBytes は bcrypt が受け付ける入力の上限（バイト数）です。
const maxInputBytes = 72

// dummyPassword は存在しないユーザーの照合に使う固定の平文です。
const dummyPassword = "exercise-hub-dummy-password"

// Codec はパスワードのハッシュ化と照合を行います。
type Codec struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewCodec は Codec を作成します。範囲外のコストは DefaultCost に置き換えます。
func NewCodec(cost int) *Codec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Codec{cost: cost}
}

// Cost はコスト係数を返します。
func (c *Codec) Cost() int {
	return c.cost
}

// Hash はパスワードを bcrypt でハッシュ化します。
func (c *Codec) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify は平文とハッシュが一致するかを返します。ハッシュが壊れていても false を返すだけです。
func (c *Codec) Verify(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plaintext)) == nil
}

// VerifyDummy は固定ハッシュとの照合を行い、結果を捨てます。
// 未登録メールアドレスのログインにも同じだけ時間をかけるために使います。
func (c *Codec) VerifyDummy(plaintext string) {
	c.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), c.cost)
		if err == nil {
			c.dummyHash = hash
		}
	})
	if c.dummyHash == nil {
		return
	}
	_ = bcrypt.CompareHashAndPassword(c.dummyHash, bcryptInput(plaintext))
}

// bcryptInput は平文を先頭 72 バイトに切り詰めます。
// 文字数の上限内でも多バイト文字では 72 バイトを超えるため、Hash と Verify で同じ切り詰めを行います。
func bcryptInput(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxInputBytes {
		b = b[:maxInputBytes]
	}
	return b
}
