package config

import (
	"testing"

	"github.com/anilens-cli/anilens/filesystem"
	"github.com/anilens-cli/anilens/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				val := viper.Get(name)
				So(val, ShouldNotBeNil)
			}
		})

		Convey("API defaults should point at the catalog and relay", func() {
			_ = Setup()
			So(viper.GetString(key.APIBaseURL), ShouldStartWith, "https://")
			So(viper.GetString(key.APIProxy), ShouldEndWith, "/")
			So(viper.GetBool(key.APIProxyEnabled), ShouldBeTrue)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("api.base_url")
			So(result, ShouldEqual, "api_base_url")
		})
	})
}
