package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("JWT 签发与校验", t, func() {
		j := NewJWT("secret", "montage-auth", time.Hour)

		token, err := j.GenerateToken("u-1", "timeline:write")
		So(err, ShouldBeNil)

		claims, err := j.ValidateToken(token)
		So(err, ShouldBeNil)
		So(claims.UserID, ShouldEqual, "u-1")
		So(claims.Scope, ShouldEqual, "timeline:write")

		Convey("密钥不符", func() {
			_, err := NewJWT("other", "montage-auth", time.Hour).ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("签发方不符", func() {
			_, err := NewJWT("secret", "someone-else", time.Hour).ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("已过期", func() {
			expired, err := NewJWT("secret", "montage-auth", -time.Minute).GenerateToken("u-1", "")
			So(err, ShouldBeNil)
			_, err = j.ValidateToken(expired)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("格式错误", func() {
			_, err := j.ValidateToken("not-a-token")
			So(err, ShouldEqual, ErrInvalidToken)
		})
	})
}
