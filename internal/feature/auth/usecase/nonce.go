package usecase

import "crypto/rand"

// nonceCharset はナンスに使用する文字集合です。
const nonceCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randString はcrypto/randから長さnのランダムな英数字文字列を生成します。
// 256は62で割り切れないため、偏りを避けるように棄却サンプリングを行います。
func randString(n int) (string, error) {
	// 62*4=248 未満のバイトだけを採用する
	const limit = byte(len(nonceCharset) * (256 / len(nonceCharset)))

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, nonceCharset[int(b)%len(nonceCharset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
