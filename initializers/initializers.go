package initializers

import (
	"context"

	"eia-backend/config"
	"eia-backend/fiberlog"
	adminhandler "eia-backend/lib/admin"
	approvalhandler "eia-backend/lib/approval"
	authhandler "eia-backend/lib/auth"
	xlsexport "eia-backend/lib/export/xls"
	notifyhandler "eia-backend/lib/notify"
	rebatehandler "eia-backend/lib/rebate"
	reporthandler "eia-backend/lib/report"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	xlsexport.NewHandler()
	authhandler.NewHandler()
	adminhandler.NewHandler()
	// notifications must be up before the handlers that send them
	notifyhandler.NewHandler(config.Conf.Smtp.From)
	rebatehandler.NewHandler()
	approvalhandler.NewHandler(config.Conf.Rebate.UnitRate)
	reporthandler.NewHandler()
}
