// Preview runs the pipeline without Discord: it prints the composed message
// and writes the chart to plot.png in the working directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/angas/weatherbot-go/chart"
	"github.com/angas/weatherbot-go/config"
	"github.com/angas/weatherbot-go/forecast"
	"github.com/angas/weatherbot-go/geocode"
	"github.com/angas/weatherbot-go/httpx"
	"github.com/angas/weatherbot-go/message"
	"github.com/angas/weatherbot-go/openmeteo"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cnfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	logger := slog.Default()
	httpClient := httpx.New(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	geocoder := geocode.New(cnfg.Geocoding.GetBaseUrl(), cnfg.Geocoding.ApiKey, httpClient, logger)
	coord, err := geocoder.Resolve(ctx, cnfg.Location.Place, cnfg.Location.RegionCode)
	if err != nil {
		panic(err)
	}

	fetcher := openmeteo.New(cnfg.Forecast.GetBaseUrl(), cnfg.Forecast.GetTimezone(), httpClient, logger)
	raw, err := fetcher.Fetch(ctx, coord)
	if err != nil {
		panic(err)
	}

	loc, err := time.LoadLocation(cnfg.Forecast.GetTimezone())
	if err != nil {
		panic(err)
	}

	daily, err := forecast.Daily(raw, loc)
	if err != nil {
		panic(err)
	}
	hourly, err := forecast.Hourly(raw, loc, forecast.MinHour)
	if err != nil {
		panic(err)
	}

	fmt.Println(message.Compose(cnfg.Discord.UserId, cnfg.Discord.DisplayName, daily))

	img, err := chart.Render(hourly)
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile("plot.png", img.Bytes(), 0o644); err != nil {
		panic(err)
	}
	fmt.Printf("wrote plot.png (%d hourly points)\n", len(hourly))
}
