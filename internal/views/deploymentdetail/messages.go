/*
Copyright 2024 Stefan Prodan

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package deploymentdetail

import "github.com/stefanprodan/kubedeck/internal/i18n"

var Messages = i18n.Table{
	"MSG_DEPLOYMENT_DETAIL_OVERVIEW_LABEL":               "Overview",
	"MSG_DEPLOYMENT_DETAIL_NEW_REPLICAS_TITLE":           "New Replica Set",
	"MSG_DEPLOYMENT_DETAIL_OLD_REPLICAS_TITLE":           "Old Replica Sets",
	"MSG_DEPLOYMENT_DETAIL_EVENTS_LABEL":                 "Events",
	"MSG_DEPLOYMENT_DETAIL_NEW_REPLICAS_ZEROSTATE_TITLE": "There is nothing to display here",
	"MSG_DEPLOYMENT_DETAIL_NEW_REPLICAS_ZEROSTATE_TEXT":  "There are currently no new Replication Controllers on this Deployment",
	"MSG_DEPLOYMENT_DETAIL_OLD_REPLICAS_ZEROSTATE_TITLE": "There is nothing to display here",
	"MSG_DEPLOYMENT_DETAIL_OLD_REPLICAS_ZEROSTATE_TEXT":  "There are currently no old Replication Controllers on this Deployment",
}
