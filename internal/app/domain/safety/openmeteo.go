package safety

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

type coordinates struct {
	Lat float64
	Lon float64
}

// cityCoordinates covers the destinations the planner sees most. Unknown
// cities fall back to Mumbai rather than failing the whole assessment.
var cityCoordinates = map[string]coordinates{
	"mumbai":    {19.0760, 72.8777},
	"delhi":     {28.6139, 77.2090},
	"bangalore": {12.9716, 77.5946},
	"goa":       {15.2993, 74.1240},
	"jaipur":    {26.9124, 75.7873},
	"kerala":    {10.8505, 76.2711},
	"manali":    {32.2432, 77.1892},
	"shimla":    {31.1048, 77.1734},
}

var _ ForecastProvider = (*OpenMeteoProvider)(nil)

// OpenMeteoProvider fetches daily forecasts from the Open-Meteo API.
type OpenMeteoProvider struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
}

func NewOpenMeteoProvider(logger *zap.Logger) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		logger:  logger,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: openMeteoBaseURL,
	}
}

// openMeteoResponse mirrors the column-oriented daily block of the API.
type openMeteoResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TempMax          []float64 `json:"temperature_2m_max"`
		TempMin          []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WindSpeedMax     []float64 `json:"windspeed_10m_max"`
		WeatherCode      []int     `json:"weathercode"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) DailyForecast(ctx context.Context, destination, startDate, endDate string) (*Forecast, error) {
	coords, ok := cityCoordinates[strings.ToLower(strings.TrimSpace(destination))]
	if !ok {
		coords = cityCoordinates["mumbai"]
		p.logger.Debug("Unknown destination for forecast, using fallback coordinates",
			zap.String("destination", destination))
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", coords.Lat))
	query.Set("longitude", fmt.Sprintf("%.4f", coords.Lon))
	query.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,windspeed_10m_max,weathercode")
	query.Set("timezone", "Asia/Kolkata")
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building forecast request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding forecast response: %w", err)
	}

	forecast := &Forecast{}
	for i, date := range payload.Daily.Time {
		day := ForecastDay{Date: date}
		if i < len(payload.Daily.TempMax) {
			day.TempMaxC = payload.Daily.TempMax[i]
		}
		if i < len(payload.Daily.TempMin) {
			day.TempMinC = payload.Daily.TempMin[i]
		}
		if i < len(payload.Daily.PrecipitationSum) {
			day.PrecipitationMM = payload.Daily.PrecipitationSum[i]
		}
		if i < len(payload.Daily.WindSpeedMax) {
			day.WindSpeedKmh = payload.Daily.WindSpeedMax[i]
		}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		forecast.Days = append(forecast.Days, day)
	}

	return forecast, nil
}
