// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
package server

type Server struct {
	AnalysisServer
	BidServer
	SettingsServer
	RateServer
}

func NewServer(
	analysisServer AnalysisServer,
	bidServer BidServer,
	settingsServer SettingsServer,
	rateServer RateServer,
) Server {
	return Server{
		AnalysisServer: analysisServer,
		BidServer:      bidServer,
		SettingsServer: settingsServer,
		RateServer:     rateServer,
	}
}
