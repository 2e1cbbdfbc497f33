package util

import "testing"

func TestInitGeoIP_EmptyPath(t *testing.T) {
	// Should not error with empty path
	err := InitGeoIP("")
	if err != nil {
		t.Errorf("Expected no error with empty path, got %v", err)
	}
}

func TestInitGeoIP_NonExistentFile(t *testing.T) {
	err := InitGeoIP("/nonexistent/path/to/geoip.mmdb")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestGetIPLocation_EmptyIP(t *testing.T) {
	city, country := GetIPLocation("")
	if city != "" || country != "" {
		t.Errorf("Expected empty location for empty IP, got %q/%q", city, country)
	}
}

func TestGetIPLocation_PrivateIPs(t *testing.T) {
	testCases := []string{
		"127.0.0.1",
		"::1",
		"10.0.0.1",
		"10.255.255.255",
		"192.168.1.1",
		"192.168.0.0",
		"::",
		"::ffff",
	}

	for _, ip := range testCases {
		city, country := GetIPLocation(ip)
		if city != "" || country != "" {
			t.Errorf("Expected empty location for private IP %s, got %q/%q", ip, city, country)
		}
	}
}

func TestGetIPLocation_NoDB(t *testing.T) {
	geoipDB = nil
	geoipCache = nil

	city, country := GetIPLocation("8.8.8.8")
	if city != "" || country != "" {
		t.Errorf("Expected empty location when DB is nil, got %q/%q", city, country)
	}
}

func TestGetIPLocation_InvalidIP(t *testing.T) {
	geoipDB = nil
	geoipCache = nil

	city, country := GetIPLocation("not-an-ip")
	if city != "" || country != "" {
		t.Errorf("Expected empty location for invalid IP, got %q/%q", city, country)
	}
}

func TestGetGeoIPCacheMetrics_NoCache(t *testing.T) {
	geoipCache = nil
	hits, misses, size := GetGeoIPCacheMetrics()

	// Metrics should still be accessible even without cache
	_ = hits
	_ = misses
	if size != 0 {
		t.Errorf("Expected size 0 when cache is nil, got %d", size)
	}
}

func TestCloseGeoIP(t *testing.T) {
	// Should not panic when DB is nil
	geoipDB = nil
	CloseGeoIP()

	if geoipDB != nil {
		t.Error("Expected geoipDB to remain nil after CloseGeoIP")
	}
}
