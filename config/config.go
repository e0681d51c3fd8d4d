package config

import (
	"github.com/usvc/go-config"
)

var Conf = config.Map{
	"gpsgate-address": &config.String{
		Default:   "https://terrasport.gpsgate.com/comGpsGate/api/v.1",
		Usage:     "base url of the GpsGate REST api",
		Shorthand: "g",
	},
	"gpsgate-token": &config.String{
		Default: "",
		Usage:   "GpsGate api token, sent as is in the Authorization header",
	},
	"gpsgate-application-id": &config.String{
		Default: "",
		Usage:   "GpsGate application id",
	},
	"gpsgate-user-id": &config.String{
		Default: "",
		Usage:   "GpsGate user id of the tracked entity",
	},
	"vpdesk-address": &config.String{
		Default:   "",
		Usage:     "base url of the VP Desk api, e.g. http://host/vplanning/api/v2",
		Shorthand: "d",
	},
	"vpdesk-apikey": &config.String{
		Default: "",
		Usage:   "VP Desk api key",
	},
	"vpdesk-resource-uid": &config.String{
		Default:   "",
		Usage:     "uid of the VP Desk resource to update",
		Shorthand: "r",
	},
	"resource-model": &config.String{
		Default: "Collaborateurs",
		Usage:   "VP Desk resource model of the updated resource",
	},
	"entity-name": &config.String{
		Default: "Collaborateurs-Localisation",
		Usage:   "VP Desk attribute that receives the \"latitude,longitude\" value",
	},
	"mapping-file": &config.String{
		Default: "",
		Usage:   "optional yaml or json file overriding resource-model and entity-name",
	},
	"http-timeout": &config.Int{
		Default: 30,
		Usage:   "HTTP timeout in seconds, default to 30",
	},
	"sync-log-file": &config.String{
		Default: "sync_log.txt",
		Usage:   "append only file receiving one line per sync run",
	},
	"sync-log-max-size": &config.Int{
		Default: 10,
		Usage:   "size in megabytes after which the sync log is rotated",
	},
	"metrics-textfile": &config.String{
		Default: "",
		Usage:   "if set, run metrics are written there in prometheus text format",
	},
	"debug": &config.Bool{
		Default: false,
		Usage:   "log everything, payloads and response bodies included, to stdout",
	},
	"log-level": &config.String{
		Default: "info",
		Usage:   "level of log, support panic|fatal|error|warn|info|debug|trace",
	},
	"log-format": &config.String{
		Default: "text",
		Usage:   "format of log, support json|text",
	},
	"log-file-path": &config.String{
		Default: "",
		Usage:   "log file path. panic will be log to a separated .panic file under the same folder",
	},
}
