package etl

// Column names of the raw click-log source. The raw schema is fixed;
// the transformer appends the derived temporal columns.
const (
	ColID             = "id"
	ColClick          = "click"
	ColHour           = "hour"
	ColBannerPos      = "banner_pos"
	ColDeviceType     = "device_type"
	ColDeviceConnType = "device_conn_type"

	ColHourOfDay = "hour_of_day"
	ColWeekday   = "weekday"
)

// hourLayout parses the raw "hour" field, e.g. 14102100 = 2014-10-21 00h.
const hourLayout = "06010215"

// RawColumns is the full source schema, in file order.
var RawColumns = []string{
	ColID, ColClick, ColHour, "C1", ColBannerPos,
	"site_id", "site_domain", "site_category",
	"app_id", "app_domain", "app_category",
	"device_id", "device_ip", "device_model", ColDeviceType, ColDeviceConnType,
	"C14", "C15", "C16", "C17", "C18", "C19", "C20", "C21",
}

// transformInputColumns must be present before transformation starts.
var transformInputColumns = []string{
	ColID, ColClick, ColHour, ColBannerPos, ColDeviceType, ColDeviceConnType,
}

// categoricalColumns get canonical casing during transformation. Columns
// absent from the input are simply skipped here; presence is enforced
// only for transformInputColumns.
var categoricalColumns = []string{
	"site_id", "site_domain", "site_category",
	"app_id", "app_domain", "app_category",
	"device_id", "device_ip", "device_model",
}

// requiredColumns is the validator's schema check list.
var requiredColumns = []string{
	ColID, ColClick, ColHour, ColBannerPos, ColHourOfDay, ColWeekday,
}

// nonNullColumns is the validator's completeness check list.
var nonNullColumns = []string{
	ColID, ColClick, ColHour, ColHourOfDay, ColWeekday,
}
