package domain

// DeviceProfile is the client fingerprint presented to the platform for one
// fresh login.
type DeviceProfile struct {
	UserAgent      string
	AppVersion     string
	AndroidVersion int
	AndroidRelease string
	DPI            string
	Resolution     string
	Manufacturer   string
	Device         string
	Model          string
}

func DefaultDeviceProfiles() []DeviceProfile {
	return []DeviceProfile{
		{
			UserAgent:      "Instagram 297.0.0.33.109 Android (33/13; 420dpi; 1080x2400; Google/google; Pixel 7; panther; panther; en_US)",
			AppVersion:     "297.0.0.33.109",
			AndroidVersion: 33,
			AndroidRelease: "13",
			DPI:            "420dpi",
			Resolution:     "1080x2400",
			Manufacturer:   "Google",
			Device:         "panther",
			Model:          "Pixel 7",
		},
		{
			UserAgent:      "Instagram 301.0.0.29.124 Android (34/14; 480dpi; 1080x2340; samsung; SM-S911B; dm1q; qcom; en_GB)",
			AppVersion:     "301.0.0.29.124",
			AndroidVersion: 34,
			AndroidRelease: "14",
			DPI:            "480dpi",
			Resolution:     "1080x2340",
			Manufacturer:   "samsung",
			Device:         "dm1q",
			Model:          "SM-S911B",
		},
		{
			UserAgent:      "Instagram 295.0.0.32.119 Android (31/12; 440dpi; 1080x2400; Xiaomi; 2201116SG; veux; qcom; fr_FR)",
			AppVersion:     "295.0.0.32.119",
			AndroidVersion: 31,
			AndroidRelease: "12",
			DPI:            "440dpi",
			Resolution:     "1080x2400",
			Manufacturer:   "Xiaomi",
			Device:         "veux",
			Model:          "2201116SG",
		},
		{
			UserAgent:      "Instagram 299.0.0.34.111 Android (33/13; 560dpi; 1440x3120; OnePlus; CPH2413; OP5552L1; qcom; en_US)",
			AppVersion:     "299.0.0.34.111",
			AndroidVersion: 33,
			AndroidRelease: "13",
			DPI:            "560dpi",
			Resolution:     "1440x3120",
			Manufacturer:   "OnePlus",
			Device:         "OP5552L1",
			Model:          "CPH2413",
		},
	}
}
