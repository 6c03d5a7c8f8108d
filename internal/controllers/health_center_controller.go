package controllers

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"

	"jeevanid/internal/config"
	"jeevanid/internal/geo"
	"jeevanid/internal/models"
)

// centerCache keeps assembled locator responses for a few minutes; the
// facility list changes rarely and decoding WKB per request is wasted work.
var centerCache = gocache.New(5*time.Minute, 10*time.Minute)

// HealthCenterResponse mirrors models.HealthCenter with the geometry
// decoded to plain coordinates for API output.
type HealthCenterResponse struct {
	ID         uint     `json:"ID"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Address    string   `json:"address"`
	District   string   `json:"district"`
	Phone      string   `json:"phone"`
	OpenHours  string   `json:"open_hours"`
	Services   string   `json:"services"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// pointToWKB converts a lng/lat pair to WKB bytes for storage.
func pointToWKB(lng, lat float64) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{lng, lat})
	return wkb.Marshal(p, binary.LittleEndian)
}

// geoJSONToWKB parses a GeoJSON point into WKB bytes.
func geoJSONToWKB(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	if _, ok := g.(*geom.Point); !ok {
		return nil, fmt.Errorf("geometry must be a Point")
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// wkbToLngLat decodes stored WKB bytes back to coordinates.
func wkbToLngLat(wkbBytes []byte) (lng, lat float64, err error) {
	if len(wkbBytes) == 0 {
		return 0, 0, fmt.Errorf("empty geometry")
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return 0, 0, err
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return 0, 0, fmt.Errorf("stored geometry is not a point")
	}
	coords := p.Coords()
	return coords[0], coords[1], nil
}

func toCenterResponse(hc models.HealthCenter) HealthCenterResponse {
	lng, lat, err := wkbToLngLat(hc.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("center_id", hc.ID).Warn("Health center has unreadable geometry")
	}
	return HealthCenterResponse{
		ID:        hc.ID,
		Name:      hc.Name,
		Category:  hc.Category,
		Address:   hc.Address,
		District:  hc.District,
		Phone:     hc.Phone,
		OpenHours: hc.OpenHours,
		Services:  hc.Services,
		Latitude:  lat,
		Longitude: lng,
	}
}

func loadCenters() ([]HealthCenterResponse, error) {
	if cached, ok := centerCache.Get("all"); ok {
		return cached.([]HealthCenterResponse), nil
	}

	var centers []models.HealthCenter
	if err := config.DB.Find(&centers).Error; err != nil {
		return nil, err
	}
	out := lo.Map(centers, func(hc models.HealthCenter, _ int) HealthCenterResponse {
		return toCenterResponse(hc)
	})
	centerCache.Set("all", out, gocache.DefaultExpiration)
	return out, nil
}

// ListHealthCenters returns facilities, sorted by distance when the caller
// supplies its position.
func ListHealthCenters(c *gin.Context) {
	centers, err := loadCenters()
	if err != nil {
		respondDBError(c, err, "no health centers found", "")
		return
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lng"})
			return
		}

		// Copy before annotating so cached entries stay distance-free.
		annotated := make([]HealthCenterResponse, len(centers))
		copy(annotated, centers)
		for i := range annotated {
			d := geo.HaversineKm(lat, lng, annotated[i].Latitude, annotated[i].Longitude)
			annotated[i].DistanceKm = &d
		}
		sort.Slice(annotated, func(i, j int) bool {
			return *annotated[i].DistanceKm < *annotated[j].DistanceKm
		})
		centers = annotated
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit < len(centers) {
			centers = centers[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": centers})
}

type createCenterInput struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category"`
	Address   string `json:"address"`
	District  string `json:"district"`
	Phone     string `json:"phone"`
	OpenHours string `json:"open_hours"`
	Services  string `json:"services"`
	Geometry  string `json:"geometry" binding:"required"` // GeoJSON point
}

// CreateHealthCenter adds a facility (admin only).
func CreateHealthCenter(c *gin.Context) {
	var input createCenterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wkbGeom, err := geoJSONToWKB(input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	center := models.HealthCenter{
		Name:      input.Name,
		Category:  input.Category,
		Address:   input.Address,
		District:  input.District,
		Phone:     input.Phone,
		OpenHours: input.OpenHours,
		Services:  input.Services,
		Geometry:  wkbGeom,
	}
	if err := config.DB.Create(&center).Error; err != nil {
		respondDBError(c, err, "health center not found", "health center already exists")
		return
	}
	centerCache.Delete("all")

	c.JSON(http.StatusCreated, gin.H{"health_center": toCenterResponse(center)})
}
